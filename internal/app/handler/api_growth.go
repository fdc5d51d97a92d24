package handler

import (
	"fmt"
	"net/http"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/middleware"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// POST /api/children/:id/growth
func (h *Handler) ApiAddGrowthRecord(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	childID, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	type requestBody struct {
		MeasuredAt time.Time `json:"measured_at" binding:"required"`
		HeightCm   float64   `json:"height_cm" binding:"required,gt=0,lt=250"`
		WeightKg   float64   `json:"weight_kg" binding:"required,gt=0,lt=200"`
		HeadCm     *float64  `json:"head_cm" binding:"omitempty,gt=0,lt=100"`
		Note       string    `json:"note" binding:"max=500"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.validationError(ctx, err)
		return
	}

	rec := &ds.GrowthRecord{
		MeasuredAt: body.MeasuredAt,
		HeightCm:   body.HeightCm,
		WeightKg:   body.WeightKg,
		HeadCm:     body.HeadCm,
		Note:       body.Note,
	}
	created, err := h.Service.AddGrowthRecord(childID, userID, rec)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"growth_record": created, "message": "growth record created"})
}

// GET /api/children/:id/growth
func (h *Handler) ApiListGrowthRecords(ctx *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(ctx)

	childID, err := parseIDParam(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	records, err := h.Service.ListGrowthRecords(childID, userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"growth_records": records, "message": "ok"})
}

// GET /api/growth/export — административная выгрузка в xlsx
func (h *Handler) ApiExportGrowthRecords(ctx *gin.Context) {
	records, err := h.Repository.AllGrowthRecords()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	xlsx := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Record ID", "Child ID", "Child Name", "Measured At", "Height (cm)", "Weight (kg)", "Head (cm)", "Recorded By", "Note"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		xlsx.SetCellValue(sheet, cell, header)
	}

	for i, rec := range records {
		row := i + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.ID)
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.ChildID)
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.Child.Name)
		xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.MeasuredAt.Format("2006-01-02"))
		xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.HeightCm)
		xlsx.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.WeightKg)
		if rec.HeadCm != nil {
			xlsx.SetCellValue(sheet, fmt.Sprintf("G%d", row), *rec.HeadCm)
		}
		xlsx.SetCellValue(sheet, fmt.Sprintf("H%d", row), rec.RecordedBy.Login)
		xlsx.SetCellValue(sheet, fmt.Sprintf("I%d", row), rec.Note)
	}

	fileName := fmt.Sprintf("growth-records-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", "attachment; filename="+fileName)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := xlsx.Write(ctx.Writer); err != nil {
		h.errorHandler(ctx, err)
		return
	}
}
