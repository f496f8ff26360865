package boot

import (
	"log"
	"stays/src/db"
	"stays/src/lib"
	"stays/src/models"
	"stays/src/types"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PaymentMethod{},
		&models.Transaction{},
		&models.Reservation{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(ExpirePendingReservations, 5*time.Minute)
	if err != nil {
		log.Printf("Error scheduling reservation expiry job: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled reservation expiry job: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// ExpirePendingReservations releases holds whose window lapsed so the
// dates become bookable again.
func ExpirePendingReservations() {
	db := db.GetDb()
	err := db.
		Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&models.Reservation{}).
				Where("status = ?", string(types.RESERVATION_PENDING)).
				Where("valid_until < ?", time.Now()).
				Update("status", string(types.RESERVATION_EXPIRED)).Error
			if err != nil {
				return err
			}
			return nil
		})
	if err != nil {
		log.Printf("Error while processing expired reservations: %s\n", err.Error())
	}
}
