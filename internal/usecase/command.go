package usecase

import (
	"strconv"
	"strings"

	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/pkg/util"
)

type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdMenu
	cmdCategory
	cmdProduct
	cmdViewCart
	cmdRemove
	cmdQuantity
	cmdEmptyCart
	cmdConfirm
)

func (k commandKind) String() string {
	switch k {
	case cmdMenu:
		return "menu"
	case cmdCategory:
		return "category"
	case cmdProduct:
		return "product"
	case cmdViewCart:
		return "view_cart"
	case cmdRemove:
		return "remove"
	case cmdQuantity:
		return "quantity"
	case cmdEmptyCart:
		return "empty_cart"
	case cmdConfirm:
		return "confirm"
	}
	return "unknown"
}

const (
	categoryReplyPrefix = "cat:"
	productReplyPrefix  = "prod:"
)

var menuWords = []string{"1", "hola", "buenas", "menu", "menú", "inicio", "empezar", "seguir comprando"}
var cartWords = []string{"2", "carrito", "ver carrito"}
var confirmWords = []string{"confirmar", "confirmar pedido"}

type command struct {
	kind     commandKind
	arg      string
	position int
	quantity int
}

// parseCommand maps one chat event onto a command. List selections
// carry a reply id; free text is matched against literal keywords,
// case-insensitive and whitespace-trimmed. Anything unrecognized maps
// to cmdUnknown, which produces the help response.
func parseCommand(message models.IncomingMessage) command {
	if id := strings.TrimSpace(message.ReplyID); id != "" {
		if name, ok := strings.CutPrefix(id, categoryReplyPrefix); ok {
			return command{kind: cmdCategory, arg: name}
		}
		if key, ok := strings.CutPrefix(id, productReplyPrefix); ok {
			return command{kind: cmdProduct, arg: key}
		}
		return command{kind: cmdUnknown}
	}

	text := strings.ToLower(strings.TrimSpace(message.Text))
	switch {
	case util.SliceIncludes(menuWords, text):
		return command{kind: cmdMenu}
	case util.SliceIncludes(cartWords, text):
		return command{kind: cmdViewCart}
	case util.SliceIncludes(confirmWords, text):
		return command{kind: cmdConfirm}
	case text == "vaciar carrito":
		return command{kind: cmdEmptyCart}
	}

	fields := strings.Fields(text)
	switch {
	case len(fields) == 2 && fields[0] == "eliminar":
		position, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{kind: cmdUnknown}
		}
		return command{kind: cmdRemove, position: position}

	case len(fields) == 3 && fields[0] == "cantidad":
		position, err1 := strconv.Atoi(fields[1])
		quantity, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return command{kind: cmdUnknown}
		}
		return command{kind: cmdQuantity, position: position, quantity: quantity}
	}

	return command{kind: cmdUnknown}
}
