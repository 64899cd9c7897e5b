package cron

import (
	"RedBlack/internal/api/config"
	"RedBlack/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	cfg             config.CronConfig
	viewFlushJob    *job.PostViewFlushJob
	counterAuditJob *job.CounterAuditJob
}

func NewCronManager(cfg config.CronConfig, viewFlushJob *job.PostViewFlushJob, counterAuditJob *job.CounterAuditJob) *Manager {
	return &Manager{
		// 上一次未结束时跳过本次，避免同一批浏览量被并发处理
		engine:          cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		cfg:             cfg,
		viewFlushJob:    viewFlushJob,
		counterAuditJob: counterAuditJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cfg.ViewFlush, s.viewFlushJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.CounterAudit, s.counterAuditJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// InitCron 注册并启动全部任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	log.Info("Cron Jobs starting...", "view_flush", mgr.cfg.ViewFlush, "counter_audit", mgr.cfg.CounterAudit)
	mgr.Start()
	return nil
}
