package usecase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/todomarket/whatsapp-bot/internal/cart"
	"github.com/todomarket/whatsapp-bot/internal/catalog"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/internal/repo/waba"
)

type OrderUsecase interface {
	ProcessMessage(ctx context.Context, message models.IncomingMessage) error
}

type orderUsecase struct {
	snapshots  catalog.Store
	carts      cart.Ledger
	chatClient waba.Client
}

func NewOrderUsecase(
	snapshots catalog.Store,
	carts cart.Ledger,
	chatClient waba.Client,
) OrderUsecase {
	return &orderUsecase{
		snapshots:  snapshots,
		carts:      carts,
		chatClient: chatClient,
	}
}

// ProcessMessage handles one chat turn for one user. Cart mistakes
// (bad position, vanished product) come back as corrective messages;
// only transport failures surface as errors.
func (uc *orderUsecase) ProcessMessage(ctx context.Context, message models.IncomingMessage) error {
	cmd := parseCommand(message)
	log.Infow(ctx, "processing message",
		"user_id", message.UserID,
		"command", cmd.kind,
		"reply_id", message.ReplyID)

	switch cmd.kind {
	case cmdMenu:
		return uc.sendCategories(ctx, message.UserID)
	case cmdCategory:
		return uc.sendProducts(ctx, message.UserID, cmd.arg)
	case cmdProduct:
		return uc.addToCart(ctx, message.UserID, cmd.arg)
	case cmdViewCart:
		return uc.sendCart(ctx, message.UserID)
	case cmdRemove:
		return uc.removeFromCart(ctx, message.UserID, cmd.position)
	case cmdQuantity:
		return uc.updateQuantity(ctx, message.UserID, cmd.position, cmd.quantity)
	case cmdEmptyCart:
		uc.carts.Clear(message.UserID)
		return uc.chatClient.SendText(ctx, message.UserID, "Listo, vacié tu carrito 🧹\nEscribe *1* para empezar de nuevo.")
	case cmdConfirm:
		return uc.checkout(ctx, message.UserID)
	default:
		return uc.chatClient.SendText(ctx, message.UserID, helpText)
	}
}

func (uc *orderUsecase) sendCategories(ctx context.Context, userID string) error {
	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		return fmt.Errorf("get catalog snapshot: %w", err)
	}

	if err := uc.chatClient.SendList(ctx, userID, categoriesList(snapshot.Categories())); err != nil {
		return fmt.Errorf("send categories list: %w", err)
	}
	return nil
}

func (uc *orderUsecase) sendProducts(ctx context.Context, userID, categoryName string) error {
	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		return fmt.Errorf("get catalog snapshot: %w", err)
	}

	products := snapshot.Products(categoryName)
	if len(products) == 0 {
		return uc.chatClient.SendText(ctx, userID, "Esa categoría ya no tiene productos 😕\nEscribe *1* para ver el menú actualizado.")
	}

	category := catalog.Category{Name: categoryName, DisplayLabel: categoryName}
	for _, c := range snapshot.Categories() {
		if c.Name == categoryName {
			category = c
			break
		}
	}

	if err := uc.chatClient.SendList(ctx, userID, productsList(category, products)); err != nil {
		return fmt.Errorf("send products list: %w", err)
	}
	return nil
}

func (uc *orderUsecase) addToCart(ctx context.Context, userID, productKey string) error {
	product, err := uc.resolveProduct(ctx, productKey)
	if errors.Is(err, models.ErrProductNotFound) {
		log.Warnw(ctx, "product not in current snapshot", "product_key", productKey)
		return uc.chatClient.SendText(ctx, userID, "Ese producto ya no está disponible 😕\nEscribe *1* para ver el menú actualizado.")
	}
	if err != nil {
		return err
	}

	item := uc.carts.Add(userID, product, 1)
	body := fmt.Sprintf("Agregué *%s* a tu carrito (x%d) ✅\n\nEscribe *ver carrito* para revisar tu pedido o *1* para seguir comprando.",
		item.Name, item.Quantity)
	return uc.chatClient.SendText(ctx, userID, body)
}

func (uc *orderUsecase) resolveProduct(ctx context.Context, productKey string) (models.Product, error) {
	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("get catalog snapshot: %w", err)
	}

	product, ok := snapshot.FindProduct(productKey)
	if !ok {
		return models.Product{}, fmt.Errorf("product %q: %w", productKey, models.ErrProductNotFound)
	}
	return product, nil
}

func (uc *orderUsecase) sendCart(ctx context.Context, userID string) error {
	items := uc.carts.Items(userID)
	if len(items) == 0 {
		return uc.chatClient.SendText(ctx, userID, emptyCartText)
	}
	return uc.chatClient.SendText(ctx, userID, cartSummary(items, uc.carts.Total(userID)))
}

func (uc *orderUsecase) removeFromCart(ctx context.Context, userID string, position int) error {
	removed, err := uc.carts.Remove(userID, position)
	if errors.Is(err, models.ErrIndexOutOfRange) {
		return uc.chatClient.SendText(ctx, userID, "No tienes un producto en esa posición 🤔\nEscribe *ver carrito* para ver los números.")
	}
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	body := fmt.Sprintf("Quité *%s* de tu carrito ✅", removed.Name)
	if err := uc.chatClient.SendText(ctx, userID, body); err != nil {
		return err
	}
	return uc.sendCart(ctx, userID)
}

func (uc *orderUsecase) updateQuantity(ctx context.Context, userID string, position, quantity int) error {
	updated, err := uc.carts.UpdateQuantity(userID, position, quantity)
	if errors.Is(err, models.ErrIndexOutOfRange) {
		return uc.chatClient.SendText(ctx, userID, "No tienes un producto en esa posición 🤔\nEscribe *ver carrito* para ver los números.")
	}
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}

	if quantity <= 0 {
		body := fmt.Sprintf("Quité *%s* de tu carrito ✅", updated.Name)
		if err := uc.chatClient.SendText(ctx, userID, body); err != nil {
			return err
		}
		return uc.sendCart(ctx, userID)
	}

	return uc.sendCart(ctx, userID)
}

// checkout produces the order summary and clears the cart, restarting
// the ordering cycle for the next add.
func (uc *orderUsecase) checkout(ctx context.Context, userID string) error {
	items := uc.carts.Items(userID)
	if len(items) == 0 {
		return uc.chatClient.SendText(ctx, userID, emptyCartText)
	}

	summary := checkoutSummary(items, uc.carts.Total(userID))
	if err := uc.chatClient.SendText(ctx, userID, summary); err != nil {
		return fmt.Errorf("send checkout summary: %w", err)
	}

	uc.carts.Clear(userID)
	log.Infow(ctx, "order confirmed", "user_id", userID, "items", len(items))
	return nil
}
