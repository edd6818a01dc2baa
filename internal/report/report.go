// Package report renders sales summaries as terminal tables for the CLI.
package report

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/fatih/color"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
)

const maxParallel = 8

const dateLayout = "2006-01-02 15:04"

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.FgHiBlack)
)

// CollectProductSales computes one summary per product id, at most parallel
// at a time. Results keep the order of ids. The first failure cancels the
// remaining work and is returned.
func CollectProductSales(ctx context.Context, svc service.SummaryService, ids []int64, parallel int) ([]*models.ProductSales, error) {
	limit := clampParallel(parallel)
	logger.L().Info().Int("products", len(ids)).Int("max_parallel", limit).Msg("product report start")

	out := make([]*models.ProductSales, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			res, err := svc.ProductSales(gctx, id)
			if err != nil {
				return fmt.Errorf("product %d: %w", id, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// clampParallel keeps the worker count within 1..maxParallel, defaulting to
// the CPU count.
func clampParallel(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, maxParallel))
}

// WriteProductSales renders one table per product.
func WriteProductSales(w io.Writer, results []*models.ProductSales) error {
	for _, ps := range results {
		heading.Fprintf(w, "Product %d\n", ps.ProductID)
		muted.Fprintf(w, "left in stock: %d\n", ps.LeftCount)
		if len(ps.Orders) == 0 {
			muted.Fprintln(w, "no orders")
			fmt.Fprintln(w)
			continue
		}

		table := tablewriter.NewWriter(w)
		table.Header("Order", "Date", "Customer", "Count", "Total")
		for _, o := range ps.Orders {
			if err := table.Append([]string{
				strconv.FormatInt(o.OrderID, 10),
				o.OrderDate.Format(dateLayout),
				o.UserName,
				strconv.FormatInt(o.Count, 10),
				o.TotalPrice.StringFixed(2),
			}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteSalesReport renders a multi-product report, one row per product line.
func WriteSalesReport(w io.Writer, rep *models.SalesReport) error {
	heading.Fprintf(w, "Sales by product (%d orders)\n", len(rep.Orders))
	if len(rep.Orders) == 0 {
		muted.Fprintln(w, "no orders in range")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Order", "Date", "Customer", "Count", "Total", "Product", "Qty", "Price")
	for _, o := range rep.Orders {
		for i, p := range o.Products {
			row := []string{"", "", "", "", ""}
			if i == 0 {
				row = []string{
					strconv.FormatInt(o.OrderID, 10),
					o.OrderDate.Format(dateLayout),
					o.UserName,
					strconv.FormatInt(o.Count, 10),
					o.TotalPrice.StringFixed(2),
				}
			}
			row = append(row, strconv.FormatInt(p.ProductID, 10), strconv.FormatInt(p.Quantity, 10), p.Price.StringFixed(2))
			if err := table.Append(row); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

// WriteCustomerReport renders one table per customer.
func WriteCustomerReport(w io.Writer, rep *models.CustomerReport) error {
	heading.Fprintf(w, "Sales by customer (%d customers)\n", len(rep.Users))
	if len(rep.Users) == 0 {
		muted.Fprintln(w, "no orders in range")
		return nil
	}

	for _, u := range rep.Users {
		fmt.Fprintln(w)
		heading.Fprintf(w, "%s (#%d)\n", u.Name, u.CustomerID)
		muted.Fprintf(w, "items: %d  total: %s\n", u.Count, u.Summ.StringFixed(2))

		table := tablewriter.NewWriter(w)
		table.Header("Order", "Date", "Summ", "Product", "Count", "Price")
		for _, o := range u.Orders {
			for i, p := range o.Products {
				row := []string{"", "", ""}
				if i == 0 {
					row = []string{strconv.FormatInt(o.OrderID, 10), o.OrderDate.Format(dateLayout), o.Summ.StringFixed(2)}
				}
				row = append(row, strconv.FormatInt(p.ProductID, 10), strconv.FormatInt(p.Quantity, 10), p.Price.StringFixed(2))
				if err := table.Append(row); err != nil {
					return err
				}
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}
