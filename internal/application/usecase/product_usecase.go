package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/application/ports"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Los listados pasan por la caché y
// cualquier escritura la invalida.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache ports.CatalogCache // nil = sin caché
	sf    singleflight.Group
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache ports.CatalogCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache}
}

// cacheField clave del listado dentro del hash de caché.
func cacheField(f entity.ProductFilter) string {
	return f.Category + "|" + f.Status
}

// List devuelve el catálogo filtrado por categoría y estado.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	filter := entity.ProductFilter{Category: strings.TrimSpace(q.Category), Status: strings.TrimSpace(q.Status)}
	field := cacheField(filter)

	if uc.cache != nil {
		if payload, ok, err := uc.cache.GetList(ctx, field); err != nil {
			log.Warn().Err(err).Str("field", field).Msg("catálogo: lectura de caché fallida")
		} else if ok {
			var out []dto.ProductResponse
			if err := json.Unmarshal(payload, &out); err == nil {
				return out, nil
			}
		}
	}

	// La carga compartida no depende de la cancelación del primer cliente.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := uc.sf.Do(field, func() (interface{}, error) {
		products, err := uc.repo.List(loadCtx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			out = append(out, toProductResponse(p))
		}
		if uc.cache != nil {
			if payload, err := json.Marshal(out); err == nil {
				if err := uc.cache.SetList(loadCtx, field, payload); err != nil {
					log.Warn().Err(err).Str("field", field).Msg("catálogo: escritura de caché fallida")
				}
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.ProductResponse), nil
}

// GetByID obtiene un producto; domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create agrega un producto. base_price debe ser positivo; status por defecto Active.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !in.BasePrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ProductStatusActive
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(in.ProductName),
		Category:           strings.TrimSpace(in.Category),
		BasePrice:          in.BasePrice,
		Description:        in.Description,
		ImageURL:           in.ImageURL,
		CloudinaryPublicID: in.CloudinaryPublicID,
		Status:             status,
		StockQuantity:      in.StockQuantity,
		SKU:                in.SKU,
		Sizes:              nonNil(in.Sizes),
		Tags:               nonNil(in.Tags),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	out := toProductResponse(p)
	return &out, nil
}

// Update aplica los campos presentes del patch.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProductName != nil {
		p.Name = strings.TrimSpace(*in.ProductName)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.BasePrice != nil {
		if !in.BasePrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.BasePrice = *in.BasePrice
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.CloudinaryPublicID != nil {
		p.CloudinaryPublicID = *in.CloudinaryPublicID
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Sizes != nil {
		p.Sizes = nonNil(*in.Sizes)
	}
	if in.Tags != nil {
		p.Tags = nonNil(*in.Tags)
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	out := toProductResponse(p)
	return &out, nil
}

// Archive marca el producto como Archived (borrado lógico).
func (uc *ProductUseCase) Archive(ctx context.Context, id string) error {
	return uc.setStatus(ctx, id, entity.ProductStatusArchived)
}

// Restore devuelve un producto archivado a Active.
func (uc *ProductUseCase) Restore(ctx context.Context, id string) error {
	return uc.setStatus(ctx, id, entity.ProductStatusActive)
}

func (uc *ProductUseCase) setStatus(ctx context.Context, id, status string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := uc.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Delete elimina el producto de forma definitiva.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Error().Err(err).Msg("catálogo: invalidación de caché fallida")
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                 p.ID,
		ProductName:        p.Name,
		Category:           p.Category,
		BasePrice:          p.BasePrice,
		Description:        p.Description,
		ImageURL:           p.ImageURL,
		CloudinaryPublicID: p.CloudinaryPublicID,
		Status:             p.Status,
		StockQuantity:      p.StockQuantity,
		SKU:                p.SKU,
		Sizes:              nonNil(p.Sizes),
		Tags:               nonNil(p.Tags),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
