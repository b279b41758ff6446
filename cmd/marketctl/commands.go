package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"
	"github.com/wichananm65/upj-marketplace/internal/dashboard"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/form"
	"github.com/wichananm65/upj-marketplace/internal/record"
	"github.com/wichananm65/upj-marketplace/internal/view"
)

func flags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

// oneArg parses fs and returns its single positional argument.
func oneArg(fs *pflag.FlagSet, args []string, what string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected <%s>", fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func runRegister(ctx context.Context, e *env, args []string) error {
	fs := flags("register")
	name := fs.String("name", "", "full name")
	role := fs.String("role", "buyer", "buyer or seller")
	phone := fs.String("phone", "", "phone number")
	jurusan := fs.String("jurusan", "", "department")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := e.client.Register(ctx, form.Registration{
		Email:    e.email,
		Password: e.password,
		FullName: *name,
		NomorHp:  *phone,
		Jurusan:  *jurusan,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "registered %s as %s\n", u.Email, u.Role)
	return nil
}

func runCategories(_ context.Context, e *env, _ []string) error {
	a := fiber.Get(e.relayURL + "/api/categories")
	if e.timeout > 0 {
		a.Timeout(e.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	res, err := envelope.Parse(code, body)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	var names []string
	if err := res.Decode(&names); err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(e.out, n)
	}
	return nil
}

func runCatalog(ctx context.Context, e *env, args []string) error {
	fs := flags("catalog")
	search := fs.String("search", "", "match name or description")
	cat := fs.String("category", view.AllCategories, "category filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := dashboard.NewBuyer(e.client, e.owns).Catalog(ctx, view.CatalogFilter{Search: *search, Category: *cat})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSELLER")
	for _, p := range c.Products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, record.FormatRupiah(p.Price), p.Stock, p.Owner)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%d of %d products\n", len(c.Products), c.Available)
	return nil
}

func runOrders(ctx context.Context, e *env, _ []string) error {
	lines, err := dashboard.NewBuyer(e.client, e.owns).Orders(ctx)
	if err != nil {
		return err
	}
	return printLines(e, lines, "SELLER")
}

func runOrder(ctx context.Context, e *env, args []string) error {
	fs := flags("order")
	qty := fs.Int("qty", 1, "quantity")
	id, err := oneArg(fs, args, "product-id")
	if err != nil {
		return err
	}
	if err := dashboard.NewBuyer(e.client, e.owns).Order(ctx, id, *qty); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "ordered %d x %s\n", *qty, id)
	return nil
}

func runSeller(ctx context.Context, e *env, _ []string) error {
	o, err := dashboard.NewSeller(e.client, e.owns).Overview(ctx)
	if err != nil {
		return err
	}
	s := o.Stats
	fmt.Fprintf(e.out, "products %d (active %d, out of stock %d), inventory %s\n",
		s.TotalProducts, s.ActiveProducts, s.OutOfStock, record.FormatRupiah(s.InventoryValue))
	fmt.Fprintf(e.out, "orders %d (pending %d, confirmed %d, rejected %d), revenue %s\n\n",
		s.TotalOrders, s.PendingOrders, s.ConfirmedOrders, s.RejectedOrders, record.FormatRupiah(s.Revenue))

	w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSTATUS")
	for _, p := range o.Products {
		status := "aktif"
		if !p.Active() {
			status = "nonaktif"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, record.FormatRupiah(p.Price), p.Stock, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(e.out)
	return printLines(e, o.Orders, "BUYER")
}

func printLines(e *env, lines []view.Line, party string) error {
	w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tPRODUCT\tQTY\tTOTAL\tSTATUS\t%s\tDATE\n", party)
	for _, l := range lines {
		other := l.Order.Seller
		if party == "BUYER" {
			other = l.Order.Buyer
		}
		date := ""
		if !l.Order.CreatedAt.IsZero() {
			date = l.Order.CreatedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n", l.Order.ID, l.ProductName(), l.Order.Quantity,
			record.FormatRupiah(l.Order.TotalPrice), l.Order.Status.Label(), other, date)
	}
	return w.Flush()
}

// productFlags binds the product form fields to fs. apply copies the flags
// the user set onto f.
func productFlags(fs *pflag.FlagSet) (apply func(f *form.ProductForm) error) {
	name := fs.String("name", "", "product name")
	desc := fs.String("description", "", "description")
	price := fs.Float64("price", 0, "price in rupiah")
	stock := fs.Int("stock", 0, "units in stock")
	cat := fs.String("category", "", "category")
	status := fs.Int("status", int(record.StatusActive), "1 active, 0 inactive")
	image := fs.String("image", "", "path to an image file")

	return func(f *form.ProductForm) error {
		if fs.Changed("name") {
			f.Name = *name
		}
		if fs.Changed("description") {
			f.Description = *desc
		}
		if fs.Changed("price") {
			f.Price = *price
		}
		if fs.Changed("stock") {
			f.Stock = *stock
		}
		if fs.Changed("category") {
			f.Category = *cat
		}
		if fs.Changed("status") {
			f.Status = record.ProductStatus(*status)
		}
		if *image != "" {
			img, err := form.ReadImage(*image)
			if err != nil {
				return err
			}
			f.Image = &img
		}
		return nil
	}
}

func runAddProduct(ctx context.Context, e *env, args []string) error {
	fs := flags("add-product")
	apply := productFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	f := form.NewProductForm()
	if err := apply(&f); err != nil {
		return err
	}
	if err := dashboard.NewSeller(e.client, e.owns).CreateProduct(ctx, f); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "listed %s\n", f.Name)
	return nil
}

func runEditProduct(ctx context.Context, e *env, args []string) error {
	fs := flags("edit-product")
	apply := productFlags(fs)
	id, err := oneArg(fs, args, "product-id")
	if err != nil {
		return err
	}
	seller := dashboard.NewSeller(e.client, e.owns)
	p, err := seller.Product(ctx, id)
	if err != nil {
		return err
	}
	f := form.EditProductForm(p)
	if err := apply(&f); err != nil {
		return err
	}
	if err := seller.UpdateProduct(ctx, id, f); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "updated %s\n", id)
	return nil
}

func runDeleteProduct(ctx context.Context, e *env, args []string) error {
	id, err := oneArg(flags("delete-product"), args, "product-id")
	if err != nil {
		return err
	}
	if err := dashboard.NewSeller(e.client, e.owns).DeleteProduct(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "deleted %s\n", id)
	return nil
}

func runConfirm(ctx context.Context, e *env, args []string) error {
	id, err := oneArg(flags("confirm"), args, "order-id")
	if err != nil {
		return err
	}
	if err := dashboard.NewSeller(e.client, e.owns).Confirm(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "confirmed %s\n", id)
	return nil
}

func runReject(ctx context.Context, e *env, args []string) error {
	id, err := oneArg(flags("reject"), args, "order-id")
	if err != nil {
		return err
	}
	if err := dashboard.NewSeller(e.client, e.owns).Reject(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "rejected %s\n", id)
	return nil
}
