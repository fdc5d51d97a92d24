package cron

import (
	"time"

	"growthtrack/internal/app/config"
	"growthtrack/internal/app/repository"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// Sweeper периодическая уборка: отмена протухших заявок,
// истечение подписок, закрытие неактивных консультаций.
// Авторизация не нужна, работа идет напрямую через репозиторий.
type Sweeper struct {
	Repository *repository.Repository
	Config     *config.Config
}

func NewSweeper(repo *repository.Repository, cfg *config.Config) *Sweeper {
	return &Sweeper{
		Repository: repo,
		Config:     cfg,
	}
}

// Start запускает планировщик; SingletonModeAll гарантирует,
// что запуски одной джобы не перекрываются.
func (s *Sweeper) Start() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()

	interval := s.Config.SweepIntervalMinutes

	_, _ = scheduler.Every(interval).Minutes().Do(func() {
		if err := s.SweepStaleRequests(); err != nil {
			log.Errorf("stale request sweep failed: %v", err)
		}
	})
	_, _ = scheduler.Every(interval).Minutes().Do(func() {
		if err := s.SweepExpiredSubscriptions(); err != nil {
			log.Errorf("subscription sweep failed: %v", err)
		}
	})
	_, _ = scheduler.Every(interval).Minutes().Do(func() {
		if err := s.SweepIdleConsultations(); err != nil {
			log.Errorf("consultation sweep failed: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Infof("sweeper started, interval %d minutes", interval)

	return scheduler
}

// SweepStaleRequests отмена неудаленных Pending старше порога.
// Повторный запуск без новых протухших заявок ничего не меняет:
// выборка фильтрует по Pending, отмененные в нее не попадают.
func (s *Sweeper) SweepStaleRequests() error {
	cutoff := time.Now().AddDate(0, 0, -s.Config.RequestStaleDays)

	ids, err := s.Repository.StalePendingRequestIDs(cutoff)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	canceled, err := s.Repository.CancelRequests(ids)
	if err != nil {
		return err
	}
	log.Infof("canceled %d stale requests", canceled)
	return nil
}

func (s *Sweeper) SweepExpiredSubscriptions() error {
	ids, err := s.Repository.OverdueActiveSubscriptionIDs(time.Now())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	expired, err := s.Repository.ExpireSubscriptions(ids)
	if err != nil {
		return err
	}
	log.Infof("expired %d subscriptions", expired)
	return nil
}

func (s *Sweeper) SweepIdleConsultations() error {
	cutoff := time.Now().AddDate(0, 0, -s.Config.ConsultationIdleDays)

	ids, err := s.Repository.IdleActiveConsultationIDs(cutoff)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	completed, err := s.Repository.CompleteConsultations(ids, time.Now())
	if err != nil {
		return err
	}
	log.Infof("auto-completed %d idle consultations", completed)
	return nil
}
