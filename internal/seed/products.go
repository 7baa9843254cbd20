// Package seed holds the sample catalog loaded into an empty store.
package seed

import "storefront/internal/models"

// Products returns the sample catalog.
func Products() []models.Product {
	return []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Price: 1200.00, Stock: 10},
		{Name: "Keyboard", Description: "Mechanical keyboard", Price: 75.00, Stock: 25},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25.00, Stock: 50},
		{Name: "Monitor", Description: "27 inch IPS monitor", Price: 320.00, Stock: 15},
		{Name: "USB-C Hub", Description: "7-in-1 USB-C adapter", Price: 45.50, Stock: 40},
		{Name: "Headphones", Description: "Noise cancelling over-ear headphones", Price: 180.00, Stock: 20},
	}
}
