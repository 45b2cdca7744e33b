package main

import (
	"context"
	"fmt"
	"strconv"

	clientRepo "gymdesk/database/repository/client"
	slotRepo "gymdesk/database/repository/slot"
	"gymdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Class hours offered every scheduled day.
var seedHours = []int{7, 9, 18, 20}

const seedCapacity = 12

// seed fills empty collections with a sample week and a handful of clients.
// Collections that already hold documents are left alone.
func seed(ctx context.Context, slots slotRepo.SlotRepository, clients clientRepo.ClientRepository, logger *zap.Logger) error {
	n, err := slots.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		ids, err := slots.CreateMany(ctx, sampleWeek())
		if err != nil {
			return fmt.Errorf("seed schedules: %w", err)
		}
		logger.Info("seeded schedules", zap.Int("count", len(ids)))
	}

	n, err = clients.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		sample := sampleClients()
		if err := clients.CreateMany(ctx, sample); err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
		logger.Info("seeded clients", zap.Int("count", len(sample)))
	}
	return nil
}

func sampleWeek() []models.SlotRecord {
	out := make([]models.SlotRecord, 0, len(models.ScheduleDays)*len(seedHours))
	for _, day := range models.ScheduleDays {
		for _, h := range seedHours {
			out = append(out, models.SlotRecord{
				ID:        models.FlexString(uuid.New().String()),
				Day:       day.String(),
				StartTime: models.FlexString(strconv.Itoa(h)),
				EndTime:   models.FlexString(strconv.Itoa(h + 1)),
				MaxCount:  seedCapacity,
				Clients:   []models.ClientRef{},
			})
		}
	}
	return out
}

func sampleClients() []models.ClientRecord {
	names := [][2]string{
		{"Ana", "Pereira"}, {"Bruno", "Silva"}, {"Carla", "Méndez"}, {"Diego", "Rodríguez"},
		{"Elena", "Gómez"}, {"Fabián", "Sosa"}, {"Gabriela", "Núñez"}, {"Hugo", "Fernández"},
	}
	out := make([]models.ClientRecord, 0, len(names))
	for i, n := range names {
		out = append(out, models.ClientRecord{
			ID:       models.FlexString(strconv.Itoa(i + 1)),
			Name:     n[0],
			LastName: n[1],
			Email:    fmt.Sprintf("client%d@example.com", i+1),
			CI:       fmt.Sprintf("4%07d", 1000+i),
		})
	}
	return out
}
