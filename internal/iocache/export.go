package iocache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/parquet"
)

// ExportOrders writes the full order history of store to a Parquet file.
func ExportOrders(ctx context.Context, w io.Writer, store contract.ProfileStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("profile store is not initialized")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.Orders == 0 {
		return errors.New("no orders found to export")
	}
	_, _ = fmt.Fprintf(w, "Exporting %d orders from %s backend...\n", status.Orders, status.Backend)

	orders, err := store.Orders(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve orders: %w", err)
	}

	rows := parquet.ConvertOrders(orders)
	if err := parquet.WriteOrdersParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d orders to: %s\n", len(rows), outputFile)
	return nil
}
