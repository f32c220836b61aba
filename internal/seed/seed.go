// Package seed installs the default catalog taxonomy on first start.
package seed

import (
	"context"
	"time"

	"autoparts-service/internal/model"

	"go.uber.org/zap"
)

// CategoryStore is the slice of the category store the seeder needs.
type CategoryStore interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, categories []model.Category) error
}

// Run seeds the default categories when the store holds none. The guard is a
// count check, not an upsert, so concurrent first starts could double-insert;
// a single-instance deployment is assumed. Callers treat failure as
// non-fatal.
func Run(ctx context.Context, categories CategoryStore, log *zap.Logger) error {
	count, err := categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("Categories already present, skipping seed", zap.Int64("count", count))
		return nil
	}

	defaults := DefaultCategories()
	if err := categories.InsertMany(ctx, defaults); err != nil {
		return err
	}

	log.Info("Default categories seeded", zap.Int("count", len(defaults)))
	return nil
}

// DefaultCategories returns the fixed default taxonomy: 11 categories, each
// with 4-6 subcategories.
func DefaultCategories() []model.Category {
	now := time.Now().UTC()

	build := func(name, description string, subs ...string) model.Category {
		subcategories := make([]model.Subcategory, len(subs))
		for i, s := range subs {
			subcategories[i] = model.Subcategory{Name: s}
		}
		return model.Category{
			Name:          name,
			Description:   description,
			Subcategories: subcategories,
			IsActive:      true,
			CreatedAt:     now,
		}
	}

	return []model.Category{
		build("Engine Parts", "Internal engine components and rebuild parts",
			"Pistons", "Crankshafts", "Camshafts", "Timing Belts", "Gaskets & Seals"),
		build("Brake System", "Braking components for all vehicle types",
			"Brake Pads", "Brake Discs", "Calipers", "Brake Lines", "Master Cylinders"),
		build("Suspension & Steering", "Ride control and steering components",
			"Shock Absorbers", "Struts", "Control Arms", "Tie Rods", "Ball Joints", "Sway Bars"),
		build("Electrical", "Starting, charging and ignition electrics",
			"Batteries", "Alternators", "Starters", "Ignition Coils", "Spark Plugs", "Fuses & Relays"),
		build("Filters", "Service filters for routine maintenance",
			"Oil Filters", "Air Filters", "Fuel Filters", "Cabin Filters"),
		build("Exhaust System", "Exhaust routing and emissions components",
			"Mufflers", "Catalytic Converters", "Exhaust Pipes", "Manifolds", "Oxygen Sensors"),
		build("Cooling System", "Engine cooling and climate components",
			"Radiators", "Water Pumps", "Thermostats", "Cooling Fans", "Hoses"),
		build("Transmission", "Drivetrain and transmission components",
			"Clutch Kits", "Flywheels", "Gearboxes", "CV Joints", "Differentials"),
		build("Body & Exterior", "Body panels, lighting and exterior trim",
			"Bumpers", "Mirrors", "Headlights", "Tail Lights", "Grilles", "Fenders"),
		build("Interior Accessories", "Cabin comfort and convenience accessories",
			"Seat Covers", "Floor Mats", "Steering Wheel Covers", "Dash Cams"),
		build("Wheels & Tires", "Wheels, tires and hub hardware",
			"Alloy Wheels", "Steel Wheels", "Tires", "Wheel Bearings", "Hub Caps"),
	}
}
