// Package cron runs the two scheduled jobs: nightly slot generation and the
// day-before reminder mail.
package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/booking"
	"github.com/turnosapp/backend/cache"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/scheduling"
	"github.com/turnosapp/backend/utils"
)

type Jobs struct {
	Generator *scheduling.Generator
	Engine    *booking.Engine
	Mailer    *utils.Mailer
	Cache     *cache.Availability
}

// Start registers the jobs and starts the scheduler. The returned cron can be
// stopped on shutdown.
func (j *Jobs) Start() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", j.generateSlots); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("0 9 * * *", j.sendReminders); err != nil {
		return nil, err
	}
	c.Start()
	log.Println("cron: generación de horarios 03:00, recordatorios 09:00")
	return c, nil
}

func (j *Jobs) generateSlots() {
	ctx := context.Background()
	result, err := j.Generator.Generate(ctx)
	if err != nil {
		// Without programmed templates there is nothing to do tonight.
		if apperr.KindOf(err) == apperr.KindNotFound {
			log.Println("cron: sin programación de horarios, no se generaron turnos")
			return
		}
		log.Printf("cron: generación de horarios: %v", err)
		return
	}
	j.Cache.Invalidate(ctx)
	log.Printf("cron: %d horarios creados, %d bloqueados", result.SlotsCreated, result.SlotsBlocked)
}

// sendReminders mails every user with a confirmed turno tomorrow.
func (j *Jobs) sendReminders() {
	if j.Mailer == nil {
		return
	}
	ctx := context.Background()
	tomorrow := models.DateOf(time.Now().AddDate(0, 0, 1))
	appointments, err := j.Engine.ConfirmedByDate(ctx, tomorrow)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return
		}
		log.Printf("cron: recordatorios del %s: %v", tomorrow, err)
		return
	}
	for i := range appointments {
		a := &appointments[i]
		if err := j.Mailer.SendReminder(a); err != nil {
			log.Printf("cron: recordatorio del turno %s: %v", a.ID, err)
			continue
		}
	}
	log.Printf("cron: %d recordatorios enviados para el %s", len(appointments), tomorrow)
}
