package service

import (
	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"
)

// Матрица возможностей роль x действие; заменяет разбросанные
// сравнения ролей по методам.

type requestAction string

const (
	actionAccept requestAction = "accept"
	actionReject requestAction = "reject"
	actionCancel requestAction = "cancel"
)

var statusActions = map[ds.RequestStatus]requestAction{
	ds.StatusAccepted: actionAccept,
	ds.StatusRejected: actionReject,
	ds.StatusCanceled: actionCancel,
}

var requestCapabilities = map[ds.Role]map[requestAction]bool{
	ds.RoleDoctor: {actionAccept: true, actionReject: true},
	ds.RoleMember: {actionCancel: true},
	ds.RoleAdmin:  {actionAccept: true, actionReject: true, actionCancel: true},
}

// authorizeTransition проверяет, может ли requester перевести req в target.
// Админ освобожден от проверки принадлежности, но не от таблицы переходов.
func authorizeTransition(requester *ds.User, req *ds.Request, target ds.RequestStatus) error {
	action, ok := statusActions[target]
	if !ok {
		return apperr.BadRequest("invalid target status")
	}
	if !requestCapabilities[requester.Role][action] {
		return apperr.Forbidden("role is not allowed to " + string(action) + " requests")
	}
	if requester.Role == ds.RoleAdmin {
		return nil
	}
	switch action {
	case actionAccept, actionReject:
		if requester.ID != req.DoctorID {
			return apperr.Forbidden("only the request's doctor may " + string(action))
		}
	case actionCancel:
		if requester.ID != req.MemberID {
			return apperr.Forbidden("only the request's member may cancel")
		}
	}
	return nil
}

// canViewRequest видимость: участник заявки, ее врач или админ.
func canViewRequest(requester *ds.User, req *ds.Request) bool {
	if requester.Role == ds.RoleAdmin {
		return true
	}
	return requester.ID == req.MemberID || requester.ID == req.DoctorID
}
