// Command cli es el cliente de terminal del inventario Kongsi: ejerce los
// stores del SDK igual que lo harían las vistas de la aplicación web.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kongsi/inventory-client/internal/application/compose"
	"github.com/kongsi/inventory-client/internal/application/store"
	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/report"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/internal/infrastructure/session"
	"github.com/kongsi/inventory-client/pkg/config"
	"github.com/kongsi/inventory-client/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, `uso: cli <comando> [flags]

comandos:
  login -email <email> -password <password>
  logout
  me
  admin-mode
  products [-page N] [-sort clave] [-filter N]
  product <id>
  add -name <nombre> -price <precio> -supplier <id>
  update <id> [-name <nombre>] [-price <precio>] [-supplier <id>]
  delete <id>
  populate
  suppliers
  roles
  roles-add -name <nombre>
  roles-toggle -id <id> -email <email>
  export [-out archivo.pdf]`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	rc := rest.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, log)

	sessPath := cfg.Session.FilePath
	if sessPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "resolver home:", err)
			os.Exit(1)
		}
		sessPath = filepath.Join(home, ".kongsi-inventory", "session.json")
	}

	errView := compose.NewErrorView(os.Getenv("LANG"))

	auth := store.NewAuthStore(rc, session.NewFileStore(sessPath), log)
	if err := auth.LoadSession(); err != nil {
		log.Warn().Err(err).Msg("cargar sesión")
	}

	inv := store.NewInventoryStore("inventory", rc, auth, func(e *apierror.ServerError) {
		errView.Set(e)
		fmt.Fprintln(os.Stderr, "refresco de listado fallido:", displayMessage(errView, e))
	}, log)
	suppliers := store.NewSupplierStore(rc, log)
	roles := store.NewUserRolesStore(rc, auth, log)

	ctx := context.Background()

	if err := run(ctx, os.Args[1], os.Args[2:], auth, inv, suppliers, roles); err != nil {
		fmt.Fprintln(os.Stderr, displayMessage(errView, err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string,
	auth *store.AuthStore, inv *store.InventoryStore,
	suppliers *store.SupplierStore, roles *store.UserRolesStore) error {

	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email de la cuenta")
		password := fs.String("password", "", "contraseña")
		_ = fs.Parse(args)
		if err := auth.Login(ctx, *email, *password); err != nil {
			return err
		}
		fmt.Println("sesión iniciada como", auth.User().Email)
		return nil

	case "logout":
		auth.Logout()
		fmt.Println("sesión cerrada")
		return nil

	case "me":
		u := auth.User()
		if u == nil {
			return apierror.General("sin sesión; use login")
		}
		fmt.Printf("email: %s\nadmin: %t\npermisos: %+v\n", u.Email, u.IsAdmin, u.Permissions)
		return nil

	case "admin-mode":
		view := compose.NewAuthView(auth, func(on bool) {
			fmt.Println("modo admin:", on)
		})
		view.ToggleAdminMode(ctx)
		return nil

	case "products":
		fs := flag.NewFlagSet("products", flag.ExitOnError)
		page := fs.Int("page", 1, "página")
		sortKey := fs.String("sort", string(entity.SortIDDesc), "clave de orden (idAsc, idDesc, nameAsc, nameDesc, priceAsc, priceDesc)")
		filter := fs.Int("filter", -1, "índice del filtro de precio (0-9); -1 sin filtro")
		_ = fs.Parse(args)

		if key := entity.SortColumnOrder(*sortKey); key != inv.SortColumnOrder() {
			inv.SetSortColumnOrder(ctx, key)
		}
		if *filter >= 0 {
			idx := *filter
			inv.SetPriceFilterIndex(ctx, &idx)
		}
		if *page != inv.CurrentPage() {
			inv.SetCurrentPage(ctx, *page)
		} else {
			inv.GetProducts(ctx)
		}
		printProducts(inv.Products(), inv.Pagination(), inv.CurrentPage())
		return nil

	case "product":
		if len(args) < 1 {
			return apierror.General("falta el id")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, err := inv.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%d\t%s\t$%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Supplier.Name)
		return nil

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		name := fs.String("name", "", "nombre del producto")
		price := fs.String("price", "", "precio")
		supplier := fs.Int64("supplier", 0, "id del proveedor")
		_ = fs.Parse(args)
		p, err := decimal.NewFromString(*price)
		if err != nil {
			return apierror.General("precio inválido: " + *price)
		}
		if err := inv.AddProduct(ctx, store.AddProductInput{Name: *name, Price: p, Supplier: *supplier}); err != nil {
			return err
		}
		fmt.Println("producto agregado")
		printProducts(inv.Products(), inv.Pagination(), inv.CurrentPage())
		return nil

	case "update":
		if len(args) < 1 {
			return apierror.General("falta el id")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		name := fs.String("name", "", "nombre nuevo")
		price := fs.String("price", "", "precio nuevo")
		supplier := fs.Int64("supplier", 0, "proveedor nuevo")
		_ = fs.Parse(args[1:])
		in := store.UpdateProductInput{Name: *name, Supplier: *supplier}
		if *price != "" {
			p, err := decimal.NewFromString(*price)
			if err != nil {
				return apierror.General("precio inválido: " + *price)
			}
			in.Price = p
		}
		if err := inv.UpdateProduct(ctx, id, in); err != nil {
			return err
		}
		fmt.Println("producto actualizado")
		return nil

	case "delete":
		if len(args) < 1 {
			return apierror.General("falta el id")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := inv.DeleteProduct(ctx, id); err != nil {
			return err
		}
		fmt.Println("producto eliminado")
		return nil

	case "populate":
		if err := inv.PopulateInventory(ctx); err != nil {
			return err
		}
		fmt.Println("inventario sembrado")
		printProducts(inv.Products(), inv.Pagination(), inv.CurrentPage())
		return nil

	case "suppliers":
		if err := suppliers.GetSuppliers(ctx); err != nil {
			return err
		}
		for _, item := range suppliers.Selection() {
			fmt.Printf("%d\t%s\n", item.Key, item.Value)
		}
		return nil

	case "roles":
		if err := roles.GetUserRoles(ctx); err != nil {
			return err
		}
		for _, r := range roles.UserRoles() {
			fmt.Printf("%d\t%s\t%+v\n", r.ID, r.Name, r.Permissions.Product)
			for _, t := range r.Targets {
				mark := " "
				if t.Applied {
					mark = "x"
				}
				fmt.Printf("\t[%s] %s\n", mark, t.Email)
			}
		}
		return nil

	case "roles-add":
		fs := flag.NewFlagSet("roles-add", flag.ExitOnError)
		name := fs.String("name", "", "nombre del rol")
		_ = fs.Parse(args)
		if err := roles.AddUserRoles(ctx, *name); err != nil {
			return err
		}
		fmt.Println("rol creado")
		return nil

	case "roles-toggle":
		fs := flag.NewFlagSet("roles-toggle", flag.ExitOnError)
		id := fs.Int64("id", 0, "id del rol")
		email := fs.String("email", "", "email objetivo")
		_ = fs.Parse(args)
		if err := roles.GetUserRoles(ctx); err != nil {
			return err
		}
		for _, r := range roles.UserRoles() {
			if r.ID == *id {
				return roles.ToggleUserRoles(ctx, store.ToggleUserRolesInput{Roles: r, Email: *email})
			}
		}
		return apierror.General(fmt.Sprintf("rol %d no encontrado", *id))

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("out", "inventario.pdf", "archivo de salida")
		_ = fs.Parse(args)
		inv.GetProducts(ctx)
		raw, err := report.NewInventoryReport().Generate("Kongsi Inventory", inv.Products())
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			return err
		}
		fmt.Println("exportado a", *out)
		return nil

	default:
		usage()
		return apierror.General("comando desconocido: " + cmd)
	}
}

func parseID(s string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, apierror.General("id inválido: " + s)
	}
	return id, nil
}

func printProducts(products []entity.Product, pg entity.Pagination, page int) {
	for _, p := range products {
		fmt.Printf("%d\t%s\t$%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Supplier.Name)
	}
	fmt.Printf("página %d de %d (prev=%t next=%t)\n", page, pg.Pages, pg.Prev, pg.Next)
}

// displayMessage proyecta el error al mensaje localizado de la vista; los
// errores ajenos al contrato se muestran tal cual.
func displayMessage(view *compose.ErrorView, err error) string {
	var se *apierror.ServerError
	if !errors.As(err, &se) {
		return err.Error()
	}
	view.Set(se)
	if msgs := view.MessagesFor(se.Type); len(msgs) > 0 {
		return msgs[0]
	}
	return se.Error()
}
