// Package orders gestiona el tablero de producción: columnas por etapa,
// movimientos entre etapas con historial y la orden de trabajo en PDF.
package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/application/ports"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

// UseCase casos de uso del tablero.
type UseCase struct {
	repo    repository.OrderRepository
	tx      OrderTxRunner
	tickets ports.TicketRenderer
	now     func() time.Time
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(repo repository.OrderRepository, tx OrderTxRunner, tickets ports.TicketRenderer) *UseCase {
	return &UseCase{repo: repo, tx: tx, tickets: tickets, now: time.Now}
}

// Board devuelve todas las etapas en orden, cada una con sus órdenes por posición.
func (uc *UseCase) Board(ctx context.Context) (*dto.BoardResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byStage := make(map[entity.Stage][]*entity.Order, len(entity.Stages()))
	for _, o := range list {
		byStage[o.Stage] = append(byStage[o.Stage], o)
	}
	out := &dto.BoardResponse{Columns: make([]dto.BoardColumn, 0, len(entity.Stages()))}
	for _, st := range entity.Stages() {
		orders := byStage[st]
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].Position < orders[j].Position })
		col := dto.BoardColumn{ID: string(st), Title: st.Title(), Orders: make([]dto.OrderResponse, 0, len(orders))}
		for _, o := range orders {
			col.Orders = append(col.Orders, toOrderResponse(o))
		}
		out.Columns = append(out.Columns, col)
	}
	return out, nil
}

// Create agrega una orden al final de su columna (designing por defecto).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	stage := entity.StageDesigning
	if in.Stage != "" {
		stage = entity.Stage(in.Stage)
	}
	if !stage.Valid() {
		return nil, domain.ErrInvalidStage
	}
	if in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var date *time.Time
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		d, err := time.Parse(dto.DateLayout, strings.TrimSpace(*in.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, *in.Date)
		}
		date = &d
	}
	now := uc.now().UTC()
	order := &entity.Order{
		ID:        uuid.New().String(),
		OrderRef:  strings.TrimSpace(in.OrderRef),
		Client:    strings.TrimSpace(in.Client),
		OrderDate: date,
		Stage:     stage,
		Qty:       in.Qty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.RunOrders(ctx, func(repo repository.OrderRepository) error {
		pos, err := repo.NextPosition(ctx, stage)
		if err != nil {
			return err
		}
		order.Position = pos
		return repo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// Move cambia la etapa (y opcionalmente la posición) de una orden y registra el
// movimiento en el historial con el usuario que lo hizo.
func (uc *UseCase) Move(ctx context.Context, id, userID string, in dto.MoveOrderRequest) (*dto.OrderResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	to := entity.Stage(in.Stage)
	if !to.Valid() {
		return nil, domain.ErrInvalidStage
	}
	var moved *entity.Order
	err := uc.tx.RunOrders(ctx, func(repo repository.OrderRepository) error {
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		var pos int
		if in.Position == nil {
			if pos, err = repo.NextPosition(ctx, to); err != nil {
				return err
			}
		} else {
			pos = *in.Position
			if err := repo.ShiftFrom(ctx, to, pos); err != nil {
				return err
			}
		}
		if err := repo.UpdateStage(ctx, id, to, pos); err != nil {
			return err
		}
		now := uc.now().UTC()
		if err := repo.InsertStageChange(ctx, &entity.StageChange{
			OrderID:   id,
			FromStage: order.Stage,
			ToStage:   to,
			ChangedBy: userID,
			ChangedAt: now,
		}); err != nil {
			return err
		}
		order.Stage = to
		order.Position = pos
		order.UpdatedAt = now
		moved = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(moved)
	return &out, nil
}

// Ticket genera el PDF de la orden de trabajo. Devuelve bytes y nombre de archivo.
func (uc *UseCase) Ticket(ctx context.Context, id string) ([]byte, string, error) {
	if err := validateID(id); err != nil {
		return nil, "", err
	}
	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	history, err := uc.repo.ListStageChanges(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.tickets.RenderOrderTicket(ctx, order, history)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: %w", err)
	}
	return pdf, fmt.Sprintf("orden-%s.pdf", order.OrderRef), nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:        o.ID,
		OrderRef:  o.OrderRef,
		Client:    o.Client,
		Qty:       o.Qty,
		Stage:     string(o.Stage),
		Position:  o.Position,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.OrderDate != nil {
		d := o.OrderDate.Format(dto.DateLayout)
		out.Date = &d
	}
	return out
}
