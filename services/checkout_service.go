package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const maxCustomerNameLength = 100

// LineRequest asks for Quantity units of one menu item.
type LineRequest struct {
	MenuItemID uint
	Quantity   int
}

type CheckoutRequest struct {
	CustomerName string
	Items        []LineRequest
}

// OrderEventPublisher is told about every committed order.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, receipt *models.Receipt) error
}

// CheckoutService turns a cart into a committed order, stock decrements and a
// receipt in a single database transaction.
type CheckoutService struct {
	DB *gorm.DB
	// TxOptions sets the isolation level of the checkout transaction; nil uses the driver default.
	TxOptions    *sql.TxOptions
	NewOrderCode func() string
	Now          func() time.Time
	Metrics      *CheckoutMetrics
	Publishers   []OrderEventPublisher
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{
		DB:           db,
		NewOrderCode: NewOrderCode,
		Now:          time.Now,
	}
}

// draftLine is a request line resolved against a locked menu item row.
type draftLine struct {
	item      *models.MenuItem
	quantity  int
	unitPrice decimal.Decimal
}

type orderDraft struct {
	customerName string
	lines        []draftLine
}

// Checkout validates req, checks and deducts stock and persists the order.
// Either everything is committed or nothing is. Failures are
// *ValidationError, *InsufficientStockError, *ConflictError or a wrapped
// persistence error.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*models.Receipt, error) {
	start := time.Now()
	receipt, err := s.checkout(ctx, req)
	s.Metrics.Observe(err, time.Since(start))

	if err != nil {
		s.logFailure(req, err)
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_number": receipt.OrderNumber,
		"lines":        len(receipt.Items),
		"total":        utils.FormatCurrency(receipt.TotalAmount),
	}).Info("Checkout committed")

	s.publish(ctx, receipt)
	return receipt, nil
}

func (s *CheckoutService) checkout(ctx context.Context, req CheckoutRequest) (*models.Receipt, error) {
	if err := ValidateCheckoutRequest(req); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := lockMenuItems(tx, req.Items)
		if err != nil {
			return err
		}

		draft, err := buildDraft(req, items)
		if err != nil {
			return err
		}

		if shortfalls := findShortfalls(draft); len(shortfalls) > 0 {
			return &InsufficientStockError{Items: shortfalls}
		}

		order, err = s.commit(tx, draft)
		return err
	}, s.TxOptions)
	if err != nil {
		return nil, retryableTxError(err)
	}

	return FormatReceipt(order), nil
}

// ValidateCheckoutRequest checks the request shape without touching storage.
func ValidateCheckoutRequest(req CheckoutRequest) error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return &ValidationError{Field: "customer_name", Line: -1, Message: "This field is required."}
	}
	if utf8.RuneCountInString(name) > maxCustomerNameLength {
		return &ValidationError{
			Field:   "customer_name",
			Line:    -1,
			Message: fmt.Sprintf("Ensure this field has no more than %d characters.", maxCustomerNameLength),
		}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items", Line: -1, Message: "At least one item is required."}
	}

	for i, line := range req.Items {
		if line.MenuItemID == 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].menu_item_id", i), Line: i, Message: "This field is required."}
		}
		if line.Quantity <= 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Line: i, Message: "Ensure this value is greater than 0."}
		}
	}
	return nil
}

// lockMenuItems reads every referenced menu item with FOR UPDATE, in id order
// so concurrent checkouts always acquire row locks in the same sequence.
func lockMenuItems(tx *gorm.DB, lines []LineRequest) (map[uint]*models.MenuItem, error) {
	seen := make(map[uint]bool, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []models.MenuItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lock menu items: %w", err)
	}

	items := make(map[uint]*models.MenuItem, len(rows))
	for i := range rows {
		items[rows[i].ID] = &rows[i]
	}
	return items, nil
}

// buildDraft resolves each line and freezes its unit price.
func buildDraft(req CheckoutRequest, items map[uint]*models.MenuItem) (*orderDraft, error) {
	draft := &orderDraft{
		customerName: strings.TrimSpace(req.CustomerName),
		lines:        make([]draftLine, 0, len(req.Items)),
	}

	for i, line := range req.Items {
		item, ok := items[line.MenuItemID]
		if !ok {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("items[%d].menu_item_id", i),
				Line:    i,
				Message: fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", line.MenuItemID),
			}
		}
		draft.lines = append(draft.lines, draftLine{
			item:      item,
			quantity:  line.Quantity,
			unitPrice: item.Price,
		})
	}
	return draft, nil
}

// findShortfalls compares the requested quantity, summed per menu item, with
// the locked stock. Every insufficient item is reported, in request order.
// The sum saturates at math.MaxInt instead of wrapping.
func findShortfalls(draft *orderDraft) []Shortfall {
	requested := make(map[uint]int, len(draft.lines))
	order := make([]*models.MenuItem, 0, len(draft.lines))
	for _, line := range draft.lines {
		sum, ok := requested[line.item.ID]
		if !ok {
			order = append(order, line.item)
		}
		if line.quantity > math.MaxInt-sum {
			sum = math.MaxInt
		} else {
			sum += line.quantity
		}
		requested[line.item.ID] = sum
	}

	var shortfalls []Shortfall
	for _, item := range order {
		if requested[item.ID] > item.Quantity {
			shortfalls = append(shortfalls, Shortfall{
				MenuItemID:        item.ID,
				MenuItemName:      item.Name,
				RequestedQuantity: requested[item.ID],
				AvailableQuantity: item.Quantity,
			})
		}
	}
	return shortfalls
}

// commit decrements stock, then writes the order, its items and the sale
// ledger entries. It must run inside the transaction that locked the items.
func (s *CheckoutService) commit(tx *gorm.DB, draft *orderDraft) (*models.Order, error) {
	now := s.Now().UTC()
	total := decimal.Zero

	for _, line := range draft.lines {
		res := tx.Model(&models.MenuItem{}).
			Where("id = ? AND quantity >= ?", line.item.ID, line.quantity).
			Update("quantity", gorm.Expr("quantity - ?", line.quantity))
		if res.Error != nil {
			return nil, fmt.Errorf("decrement stock of menu item %d: %w", line.item.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, &ConflictError{Reason: fmt.Sprintf("stock of menu item %d changed concurrently", line.item.ID)}
		}
		line.item.Quantity -= line.quantity

		total = total.Add(line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))))
	}

	order := &models.Order{
		OrderNumber:  s.NewOrderCode(),
		CustomerName: draft.customerName,
		OrderDate:    now,
		TotalAmount:  total,
	}
	if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Reason: fmt.Sprintf("order number %s already exists", order.OrderNumber), Err: err}
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderItems := make([]models.OrderItem, 0, len(draft.lines))
	for _, line := range draft.lines {
		orderItem := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: line.item.ID,
			Quantity:   line.quantity,
			Price:      line.unitPrice,
		}
		if err := tx.Omit(clause.Associations).Create(&orderItem).Error; err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}

		ledger := models.InventoryTransaction{
			MenuItemID:      line.item.ID,
			OrderID:         &order.ID,
			Quantity:        -line.quantity,
			TransactionType: models.TransactionTypeSale,
			Price:           line.unitPrice,
			TransactionDate: now,
		}
		if err := tx.Omit(clause.Associations).Create(&ledger).Error; err != nil {
			return nil, fmt.Errorf("record inventory transaction: %w", err)
		}

		orderItem.MenuItem = *line.item
		orderItems = append(orderItems, orderItem)
	}
	order.OrderItems = orderItems

	return order, nil
}

func (s *CheckoutService) publish(ctx context.Context, receipt *models.Receipt) {
	for _, p := range s.Publishers {
		if err := p.PublishOrderCreated(ctx, receipt); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"order_number": receipt.OrderNumber,
				"publisher":    fmt.Sprintf("%T", p),
			}).Errorf("Failed to publish order event: %v", err)
		}
	}
}

func (s *CheckoutService) logFailure(req CheckoutRequest, err error) {
	fields := logrus.Fields{
		"customer_name": req.CustomerName,
		"lines":         len(req.Items),
		"outcome":       CheckoutOutcome(err),
	}
	switch CheckoutOutcome(err) {
	case OutcomeError:
		utils.ErrorLogger.WithFields(fields).Errorf("Checkout failed: %v", err)
	default:
		utils.InfoLogger.WithFields(fields).Infof("Checkout rejected: %v", err)
	}
}
