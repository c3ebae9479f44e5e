package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/shopspring/decimal"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
)

// Loads a small development dataset through the regular services so stock
// reservations run the same path they do in production.
func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	if err := seed(context.Background(), database); err != nil {
		log.Fatal(err)
	}
	log.Println("Sample data loaded successfully!")
}

func seed(ctx context.Context, database *sql.DB) error {
	products := product.NewService(product.NewRepository(database), nil)
	orders := order.NewService(order.NewRepository(database), nil)

	inputs := []product.Input{
		{
			Name:          "Laptop Dell XPS 15",
			Description:   "High-performance laptop with Intel i7",
			Price:         decimal.RequireFromString("1299.99"),
			StockQuantity: 50,
		},
		{
			Name:          "Logitech MX Master 3",
			Description:   "Wireless ergonomic mouse",
			Price:         decimal.RequireFromString("99.99"),
			StockQuantity: 100,
		},
		{
			Name:          "Mechanical Keyboard RGB",
			Description:   "Gaming keyboard with RGB lighting",
			Price:         decimal.RequireFromString("149.99"),
			StockQuantity: 75,
		},
		{
			Name:          "Samsung 27\" 4K Monitor",
			Description:   "4K UHD monitor with HDR",
			Price:         decimal.RequireFromString("399.99"),
			StockQuantity: 30,
		},
		{
			Name:          "Sony WH-1000XM4",
			Description:   "Noise-cancelling wireless headphones",
			Price:         decimal.RequireFromString("349.99"),
			StockQuantity: 60,
		},
	}

	ids := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		p, err := products.Create(ctx, in)
		if err != nil {
			return err
		}
		ids = append(ids, p.ID)
	}
	log.Printf("Created %d products", len(ids))

	laptop, mouse, keyboard, monitor, headphones := ids[0], ids[1], ids[2], ids[3], ids[4]

	order1, err := orders.Create(ctx, order.CustomerInput{
		CustomerName:  "John Doe",
		CustomerEmail: "john.doe@example.com",
	})
	if err != nil {
		return err
	}
	for _, line := range []struct {
		productID int64
		quantity  int
	}{
		{laptop, 1},
		{mouse, 2},
		{keyboard, 1},
	} {
		if _, err := orders.AddItem(ctx, order1.ID, line.productID, line.quantity); err != nil {
			return err
		}
	}

	order2, err := orders.Create(ctx, order.CustomerInput{
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane.smith@example.com",
	})
	if err != nil {
		return err
	}
	for _, productID := range []int64{monitor, headphones} {
		if _, err := orders.AddItem(ctx, order2.ID, productID, 1); err != nil {
			return err
		}
	}

	// Items could only be attached while PENDING; flip the second order to
	// PROCESSING afterwards.
	if _, err := database.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(order.StatusProcessing), order2.ID,
	); err != nil {
		return err
	}

	log.Printf("Created 2 orders with order items")
	return nil
}
