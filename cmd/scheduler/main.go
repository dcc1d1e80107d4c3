package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/fernbank/lending-engine/internal/config"
	"github.com/fernbank/lending-engine/internal/repository"
)

// The referral-tracking process: referral statuses are never transitioned by
// the allocator itself, so expiry runs out of band through the store.
func main() {
	log.Println("Starting referral scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	referralRepo := repository.NewReferralRepository(db)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	_, err = c.AddFunc(cfg.Scheduler.ExpirySchedule, func() {
		expireReferrals(referralRepo)
	})
	if err != nil {
		log.Fatalf("Error scheduling referral expiry job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func expireReferrals(referralRepo repository.ReferralRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := referralRepo.ExpirePending(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Error expiring referrals: %v", err)
		return
	}

	log.Printf("Marked %d referrals as expired", expired)
}
