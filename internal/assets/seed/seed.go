package seed

import (
	"context"
	"fmt"
	"smartoffice/internal/assets/repository"
	"smartoffice/pkg/logger"
	"smartoffice/pkg/model"
)

// DemoAssets returns a fresh copy of the demo catalog. Held entries are
// manual holds so only an admin can free them.
func DemoAssets() []model.Asset {
	return []model.Asset{
		{Name: "S11 Conference Hall", Type: "Room", Description: "Main conference room, Building A.", IsAvailable: true},
		{Name: "Nanography Think Tank", Type: "Room", Description: "R&D space with whiteboard walls. Reserved for the innovation team.", IsAvailable: false, BookedBy: model.ManualHolder, BookedByFullName: "Innovation Team"},
		{Name: "Sittard Video Link", Type: "Room", Description: "Video conference suite.", IsAvailable: true},
		{Name: "Quiet Focus Room 302", Type: "Room", Description: "Soundproof booth. Building B, 3rd floor.", IsAvailable: true},
		{Name: "NanoInk Formulation Lab", Type: "Lab", Description: "Restricted access.", IsAvailable: false, BookedBy: model.ManualHolder, BookedByFullName: "Chemistry"},
		{Name: "Substrate Compatibility Lab", Type: "Lab", Description: "Paper, plastic and cartonboard testing.", IsAvailable: true},
		{Name: "Print Quality QA Station", Type: "Lab", Description: "Microscope and densitometer setup.", IsAvailable: true},
		{Name: "R&D Desk - Chemistry Lead", Type: "Desk", Description: "Workstation near the formulation lab.", IsAvailable: true},
		{Name: "Hot Desk - Sales Float", Type: "Desk", Description: "Open desk for visiting sales representatives.", IsAvailable: true},
		{Name: "Intern Cluster - Desk 1", Type: "Desk", Description: "Engineering intern workstation.", IsAvailable: true},
		{Name: "S11P Prototype (Beta)", Type: "Printer", Description: "Double-sided B1 test unit.", IsAvailable: true},
		{Name: "Office Plotter - Wide Format", Type: "Printer", Description: "Large schematics and plans.", IsAvailable: false, BookedBy: model.ManualHolder, BookedByFullName: "Facilities"},
		{Name: "MacBook Pro M3 (Loaner)", Type: "Laptop", Description: "Asset tag LND-992.", IsAvailable: true},
		{Name: "Visitor Spot A1", Type: "Parking", Description: "Reserved for customer visits.", IsAvailable: true},
		{Name: "EV Charging Station - North", Type: "Parking", Description: "Level 2 charger.", IsAvailable: true},
	}
}

// Seed loads the demo catalog into an empty store. A store that already holds
// assets is left untouched. It returns the number of assets created.
func Seed(ctx context.Context, repo repository.AssetRepository, log *logger.Logger) (int, error) {
	count, err := repo.Count(ctx, model.AssetFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	if count > 0 {
		log.Info("Asset store not empty, skipping demo seed", "count", count)
		return 0, nil
	}

	created := 0
	for _, asset := range DemoAssets() {
		if err := repo.Create(ctx, &asset); err != nil {
			return created, fmt.Errorf("failed to seed asset %q: %w", asset.Name, err)
		}
		created++
	}

	log.Info("Seeded demo assets", "count", created)
	return created, nil
}
