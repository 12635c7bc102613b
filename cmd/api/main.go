package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iseungsang01/tarot-manager-app/internal/config"
	"github.com/iseungsang01/tarot-manager-app/internal/db"
	"github.com/iseungsang01/tarot-manager-app/internal/httpserver"
	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
	customerrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/customer"
	noticerepo "github.com/iseungsang01/tarot-manager-app/internal/repository/notice"
	suggestionrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/suggestion"
	visitrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/visit"
	voterepo "github.com/iseungsang01/tarot-manager-app/internal/repository/vote"
	adminsvc "github.com/iseungsang01/tarot-manager-app/internal/service/admin"
	birthdaysvc "github.com/iseungsang01/tarot-manager-app/internal/service/birthday"
	customersvc "github.com/iseungsang01/tarot-manager-app/internal/service/customer"
	noticesvc "github.com/iseungsang01/tarot-manager-app/internal/service/notice"
	stampsvc "github.com/iseungsang01/tarot-manager-app/internal/service/stamp"
	suggestionsvc "github.com/iseungsang01/tarot-manager-app/internal/service/suggestion"
	votesvc "github.com/iseungsang01/tarot-manager-app/internal/service/vote"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	couponRepo := couponrepo.NewPostgres(dbpool, logger)
	visitRepo := visitrepo.NewPostgres(dbpool)
	noticeRepo := noticerepo.NewPostgres(dbpool)
	voteRepo := voterepo.NewPostgres(dbpool)
	suggestionRepo := suggestionrepo.NewPostgres(dbpool)

	customerService := customersvc.New(customerRepo)
	stampService := stampsvc.New(customerRepo, couponRepo, visitRepo, cfg.CouponValidDays)
	birthdayService := birthdaysvc.New(customerRepo, couponRepo, cfg.BirthdayValidDays)
	noticeService := noticesvc.New(noticeRepo)
	voteService := votesvc.New(voteRepo)
	suggestionService := suggestionsvc.New(suggestionRepo)
	adminService := adminsvc.New(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTokenTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc:   customerService,
		StampSvc:      stampService,
		BirthdaySvc:   birthdayService,
		NoticeSvc:     noticeService,
		VoteSvc:       voteService,
		SuggestionSvc: suggestionService,
		AdminSvc:      adminService,
		CouponRepo:    couponRepo,
		VisitRepo:     visitRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
