package main

import (
	"fmt"
	"log"

	"github.com/passionatedev1128/everwell-sub001/internal/config"
	"github.com/passionatedev1128/everwell-sub001/internal/database"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/utils"
)

func main() {
	fmt.Println("🌱 Everwell Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAccount{},
		&models.Product{},
		&models.DocumentRecord{},
		&models.Order{},
		&models.OrderLine{},
		&models.PaymentProof{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", productCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
		db.Where("1 = 1").Delete(&models.Product{})
	}

	// Admin account
	adminPassword, _ := utils.HashPassword("admin12345")
	admin := models.UserAccount{
		Email:    "admin@everwell.com.br",
		Password: adminPassword,
		Name:     "Everwell Admin",
		Role:     models.RoleAdmin,
	}
	if err := db.Where(models.UserAccount{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}
	fmt.Printf("✅ Admin: %s\n", admin.Email)

	// Demo customer
	customerPassword, _ := utils.HashPassword("customer123")
	customer := models.UserAccount{
		Email:    "cliente@example.com",
		Password: customerPassword,
		Name:     "Demo Customer",
		Role:     models.RoleCustomer,
	}
	if err := db.Where(models.UserAccount{Email: customer.Email}).FirstOrCreate(&customer).Error; err != nil {
		log.Fatalf("❌ Failed to seed customer: %v", err)
	}
	fmt.Printf("✅ Customer: %s\n", customer.Email)

	// Catalog
	products := []models.Product{
		{Name: "CBD Oil 10% 30ml", Slug: "cbd-oil-10-30ml", Description: "Full-spectrum CBD oil, 10% concentration.", PriceCents: 34900, Restricted: true},
		{Name: "CBD Oil 20% 30ml", Slug: "cbd-oil-20-30ml", Description: "Full-spectrum CBD oil, 20% concentration.", PriceCents: 59900, Restricted: true},
		{Name: "THC/CBD Balanced Tincture", Slug: "thc-cbd-balanced-tincture", Description: "1:1 balanced tincture for prescribed patients.", PriceCents: 78900, Restricted: true},
		{Name: "Hemp Lip Balm", Slug: "hemp-lip-balm", Description: "Hemp seed oil lip balm.", PriceCents: 2500, Restricted: false},
		{Name: "Hemp Body Lotion", Slug: "hemp-body-lotion", Description: "Moisturizing lotion with hemp extract.", PriceCents: 6900, Restricted: false},
	}
	for _, p := range products {
		product := p
		if err := db.Where(models.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Fatalf("❌ Failed to seed product %s: %v", p.Slug, err)
		}
		fmt.Printf("✅ Product: %s (%d)\n", product.Name, product.PriceCents)
	}

	fmt.Println("🎉 Seed complete")
}
