// Package shell is the storefront's application shell: an interactive
// prompt that plays the role the page components play in a browser. One
// process is one shopping session, so the anonymous cart and wishlist live
// exactly as long as the shell.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"go.uber.org/fx"

	"github.com/pharmakit/storefront/internal/config"
	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/gateway"
	"github.com/pharmakit/storefront/internal/usecase"
	"github.com/pharmakit/storefront/pkg/util"
)

type Shell struct {
	conf     *config.Config
	gate     *usecase.SessionGate
	cart     *usecase.CartService
	wishlist *usecase.WishlistService
	checkout *usecase.CheckoutService
	catalog  gateway.CatalogClient

	in  io.Reader
	out io.Writer

	// lastResults remembers the last search/browse listing so that add/wish
	// commands can reference products by position.
	lastResults []models.Product
}

func New(
	conf *config.Config,
	gate *usecase.SessionGate,
	cart *usecase.CartService,
	wishlist *usecase.WishlistService,
	checkout *usecase.CheckoutService,
	catalog gateway.CatalogClient,
) *Shell {
	return &Shell{
		conf:     conf,
		gate:     gate,
		cart:     cart,
		wishlist: wishlist,
		checkout: checkout,
		catalog:  catalog,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// Start runs the prompt loop on the fx lifecycle and shuts the app down
// when the shopper quits or stdin closes.
func Start(lc fx.Lifecycle, sd fx.Shutdowner, sh *Shell) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				sh.Run(context.Background())
				if err := sd.Shutdown(); err != nil {
					log.Errorw(ctx, "shutdown failed", "error", err)
				}
			}()
			return nil
		},
	})
}

// Run reads commands until quit or EOF.
func (s *Shell) Run(ctx context.Context) {
	s.printWelcome()
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, s.conf.Shell.Prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}
		s.dispatch(ctx, cmd, args)
	}
}

func (s *Shell) dispatch(ctx context.Context, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		s.printHelp()
	case "whoami":
		s.printSession()
	case "search":
		err = s.search(ctx, strings.Join(args, " "))
	case "categories":
		err = s.categories(ctx)
	case "browse":
		err = s.browse(ctx, args)
	case "cart":
		err = s.showCart(ctx)
	case "add":
		err = s.addToCart(ctx, args)
	case "qty":
		err = s.setQuantity(ctx, args)
	case "remove":
		err = s.removeFromCart(ctx, args)
	case "wish":
		err = s.toggleWishlist(ctx, args)
	case "wishlist":
		err = s.showWishlist(ctx)
	case "wishcart":
		err = s.wishlistToCart(ctx, args)
	case "login":
		err = s.login(ctx, args)
	case "logout":
		err = s.gate.SignOut(ctx)
	case "signup":
		err = s.signup(ctx, args)
	case "checkout":
		err = s.doCheckout(ctx, args)
	case "orders":
		err = s.showOrders(ctx)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}
	if err != nil {
		s.renderError(ctx, err)
	}
}

// renderError is the banner-vs-redirect decision point: authorization
// failures clear the session and send the shopper to sign-in, everything
// else stays an inline message.
func (s *Shell) renderError(ctx context.Context, err error) {
	if models.IsAuthFailure(err) {
		s.gate.Invalidate(ctx)
		fmt.Fprintln(s.out, "! your session has expired, please login again")
		return
	}
	fmt.Fprintf(s.out, "! %v\n", err)
}

func (s *Shell) printWelcome() {
	fmt.Fprintln(s.out, "pharmacy storefront - type help for commands")
	s.printSession()
}

func (s *Shell) printSession() {
	state := s.gate.Current()
	if state.Phase == models.PhaseAuthenticated && state.Profile != nil {
		fmt.Fprintf(s.out, "signed in as %s (%s)\n", state.Profile.Email, state.Profile.Role)
		return
	}
	fmt.Fprintf(s.out, "browsing as guest %s\n", state.GuestID)
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `commands:
  search <name>          search the catalog
  categories             list categories
  browse <category-id>   list drugs in a category
  add <n>                add result n to the cart
  qty <n> <1-10>         change quantity of cart line n
  remove <n>             remove cart line n
  cart                   show the cart
  wish <n>               toggle result n on the wishlist
  wishlist               show the wishlist
  wishcart <n>           add wishlist line n to the cart
  login <email> <pass>   sign in
  signup <email> <pass> <confirm> <first-name>
  logout                 sign out
  checkout [card|cash|insurance]  place an order (requires sign-in)
  orders                 list your orders
  whoami                 show session
  quit                   leave
`)
}

func (s *Shell) search(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: search needs a name", models.ErrValidation)
	}
	results, err := s.catalog.SearchDrugs(ctx, name)
	if err != nil {
		return err
	}
	s.printResults(ctx, results)
	return nil
}

func (s *Shell) categories(ctx context.Context) error {
	cats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Fprintf(s.out, "  %-10s %s\n", c.ID, c.CategoryName)
	}
	return nil
}

func (s *Shell) browse(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: browse needs a category id", models.ErrValidation)
	}
	results, err := s.catalog.DrugsByCategory(ctx, args[0])
	if err != nil {
		return err
	}
	s.printResults(ctx, results)
	return nil
}

func (s *Shell) printResults(ctx context.Context, results []models.DrugDetails) {
	// refresh wishlist membership so the markers reflect the server, not the
	// last rendered panel
	if _, err := s.wishlist.View(ctx); err != nil {
		log.Warnw(ctx, "wishlist markers may be stale", "error", err)
	}
	s.lastResults = s.lastResults[:0]
	if len(results) == 0 {
		fmt.Fprintln(s.out, "no products found")
		return
	}
	for i, d := range results {
		p := d.Product()
		s.lastResults = append(s.lastResults, p)
		stock := "in stock"
		if !p.InStock {
			stock = "unavailable"
		}
		marker := " "
		if s.wishlist.Contains(p.ID) {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %2d. %-30s $%s  %s\n", marker, i+1, p.Name, p.Price.StringFixed(2), stock)
	}
}

func (s *Shell) pickResult(args []string) (models.Product, error) {
	if len(args) != 1 {
		return models.Product{}, fmt.Errorf("%w: need a result number", models.ErrValidation)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(s.lastResults) {
		return models.Product{}, fmt.Errorf("%w: no such result", models.ErrValidation)
	}
	return s.lastResults[n-1], nil
}

func (s *Shell) addToCart(ctx context.Context, args []string) error {
	product, err := s.pickResult(args)
	if err != nil {
		return err
	}
	if err := s.cart.Add(ctx, product); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "added %s, cart has %d item(s)\n", product.Name, s.cart.Badge())
	return nil
}

func (s *Shell) showCart(ctx context.Context) error {
	view, err := s.cart.View(ctx)
	if err != nil {
		s.printCart(view)
		return err
	}
	s.printCart(view)
	return nil
}

func (s *Shell) printCart(view models.CartView) {
	if len(view.Lines) == 0 {
		fmt.Fprintln(s.out, "your cart is empty")
		return
	}
	for i, l := range view.Lines {
		fmt.Fprintf(s.out, "  %2d. %-30s x%-2d $%s\n",
			i+1, l.Product.Name, l.Quantity, l.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(s.out, "  subtotal: $%s\n", view.Subtotal.StringFixed(2))
}

func (s *Shell) cartLine(ctx context.Context, arg string) (models.CartLine, error) {
	view, err := s.cart.View(ctx)
	if err != nil {
		return models.CartLine{}, err
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(view.Lines) {
		return models.CartLine{}, fmt.Errorf("%w: no such cart line", models.ErrValidation)
	}
	return view.Lines[n-1], nil
}

func (s *Shell) setQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: qty needs a line number and a quantity", models.ErrValidation)
	}
	line, err := s.cartLine(ctx, args[0])
	if err != nil {
		return err
	}
	// The quantity selector offers 1-10, as the product pages do.
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty < 1 || qty > 10 {
		return fmt.Errorf("%w: quantity must be between 1 and 10", models.ErrValidation)
	}
	return s.cart.SetQuantity(ctx, line.Product.ID, qty)
}

func (s *Shell) removeFromCart(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: remove needs a line number", models.ErrValidation)
	}
	line, err := s.cartLine(ctx, args[0])
	if err != nil {
		return err
	}
	return s.cart.Remove(ctx, line.Product.ID)
}

func (s *Shell) toggleWishlist(ctx context.Context, args []string) error {
	product, err := s.pickResult(args)
	if err != nil {
		return err
	}
	return s.wishlist.Toggle(ctx, product)
}

func (s *Shell) showWishlist(ctx context.Context) error {
	lines, err := s.wishlist.View(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "your wishlist is empty")
		return nil
	}
	for i, l := range lines {
		fmt.Fprintf(s.out, "  %2d. %-30s $%s\n", i+1, l.Product.Name, l.Product.Price.StringFixed(2))
	}
	return nil
}

func (s *Shell) wishlistToCart(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: wishcart needs a line number", models.ErrValidation)
	}
	lines, err := s.wishlist.View(ctx)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(lines) {
		return fmt.Errorf("%w: no such wishlist line", models.ErrValidation)
	}
	return s.wishlist.AddToCart(ctx, lines[n-1].Product.ID)
}

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login needs an email and a password", models.ErrValidation)
	}
	profile, err := s.gate.SignIn(ctx, models.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "welcome back, %s\n", profile.FirstName)
	return nil
}

func (s *Shell) signup(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("%w: signup needs email, password, confirmation and a first name", models.ErrValidation)
	}
	req := models.SignUpRequest{
		Email:           args[0],
		Password:        args[1],
		ConfirmPassword: args[2],
		FirstName:       strings.Join(args[3:], " "),
	}
	if _, err := s.gate.SignUp(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "account created, you can login now")
	return nil
}

var paymentMethods = []string{"card", "cash", "insurance"}

func (s *Shell) doCheckout(ctx context.Context, args []string) error {
	method := "card"
	if len(args) > 0 {
		method = strings.ToLower(args[0])
	}
	if !util.SliceIncludes(paymentMethods, method) {
		return fmt.Errorf("%w: payment method must be one of %s",
			models.ErrValidation, strings.Join(paymentMethods, ", "))
	}
	order, err := s.checkout.Checkout(ctx, method)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "order %s placed, total $%s\n", order.ID, order.TotalPrice.StringFixed(2))
	return nil
}

func (s *Shell) showOrders(ctx context.Context) error {
	orders, err := s.checkout.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "no orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(s.out, "  %-24s %-10s $%s\n", o.ID, o.Status, o.TotalPrice.StringFixed(2))
	}
	return nil
}
