package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	log.Printf("Connecting to postgres: %s@%s:%d/%s", c.PostgresUser, c.PostgresHost, c.PostgresPort, c.PostgresDB)
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=Asia/Bangkok",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleUser},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedPlans installs the default support tiers shown on the pricing page.
func SeedPlans(db *gorm.DB) error {
	plans := []models.Plan{
		{
			Name:      "Free",
			Price:     0,
			PriceType: models.PriceTypeFixed,
			Features:  `["post lost-car reports","submit tips","leaderboard points"]`,
			Icon:      "star",
		},
		{
			Name:      "Supporter",
			Price:     99,
			PriceType: models.PriceTypeFixed,
			Features:  `["highlighted reports","priority review","supporter badge"]`,
			Icon:      "heart",
		},
		{
			Name:      "Donation",
			Price:     0,
			PriceType: models.PriceTypeCustom,
			Features:  `["support the community","choose your own amount"]`,
			Icon:      "gift",
		},
	}

	for _, plan := range plans {
		if err := db.FirstOrCreate(&plan, models.Plan{Name: plan.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func SeedConversionRate(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PointConversionRate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.PointConversionRate{ConversionRate: models.DefaultConversionRate}).Error
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Profile{},
		&models.Blacklist{},
		&models.LostCar{},
		&models.CarImage{},
		&models.Tip{},
		&models.PointEntry{},
		&models.PointConversionRate{},
		&models.Plan{},
		&models.UserPlan{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRoles(db); err != nil {
		return fmt.Errorf("seeding roles error: %v", err)
	}

	if err := SeedPlans(db); err != nil {
		return fmt.Errorf("seeding plans error: %v", err)
	}

	if err := SeedConversionRate(db); err != nil {
		return fmt.Errorf("seeding conversion rate error: %v", err)
	}

	return nil
}
