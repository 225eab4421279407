package content

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/b2bnews/pkg/sanitizer"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

// ProductInput holds the fields of a new product.
type ProductInput struct {
	Name                string            `json:"name"`
	Category            string            `json:"category"`
	Description         string            `json:"description"`
	DescriptionMarkdown string            `json:"descriptionMarkdown,omitempty"`
	ShortDescription    string            `json:"shortDescription"`
	Image               string            `json:"image"`
	ImageAlt            string            `json:"imageAlt"`
	Gallery             []string          `json:"gallery"`
	Price               float64           `json:"price"`
	Specifications      map[string]string `json:"specifications"`
	Featured            bool              `json:"featured"`
	ExternalLink        string            `json:"externalLink"`
	MetaTitle           string            `json:"metaTitle,omitempty"`
	MetaDescription     string            `json:"metaDescription,omitempty"`
	MetaKeywords        string            `json:"metaKeywords,omitempty"`
	Slug                string            `json:"slug,omitempty"`
}

// ProductPatch holds a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name                *string            `json:"name,omitempty"`
	Category            *string            `json:"category,omitempty"`
	Description         *string            `json:"description,omitempty"`
	DescriptionMarkdown *string            `json:"descriptionMarkdown,omitempty"`
	ShortDescription    *string            `json:"shortDescription,omitempty"`
	Image               *string            `json:"image,omitempty"`
	ImageAlt            *string            `json:"imageAlt,omitempty"`
	Gallery             *[]string          `json:"gallery,omitempty"`
	Price               *float64           `json:"price,omitempty"`
	Specifications      *map[string]string `json:"specifications,omitempty"`
	Featured            *bool              `json:"featured,omitempty"`
	ExternalLink        *string            `json:"externalLink,omitempty"`
	MetaTitle           *string            `json:"metaTitle,omitempty"`
	MetaDescription     *string            `json:"metaDescription,omitempty"`
	MetaKeywords        *string            `json:"metaKeywords,omitempty"`
	Slug                *string            `json:"slug,omitempty"`
}

// ProductService manages the product catalogue.
type ProductService struct {
	items *Collection[Product]
	opts  *options
}

func NewProductService(backend snapshot.Backend, opts ...Option) *ProductService {
	o := applyOptions(opts)
	return &ProductService{
		items: NewCollection[Product](backend, KeyProducts, o.log),
		opts:  o,
	}
}

// Load reads the stored products and repairs missing slugs.
// defaults is used when nothing has been stored yet.
func (s *ProductService) Load(ctx context.Context, defaults []Product) error {
	return s.items.Load(ctx, func(items []Product) []Product {
		return slug.HealWith(s.opts.slugs, items)
	}, func() []Product {
		return slices.Clone(defaults)
	})
}

// Flush writes the current products to the backend.
func (s *ProductService) Flush(ctx context.Context) error {
	return s.items.Flush(ctx)
}

func (s *ProductService) List() []Product {
	return s.items.All()
}

func (s *ProductService) Get(id string) (Product, error) {
	p, ok := s.items.Find(func(p Product) bool { return p.ID == id })
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *ProductService) BySlug(value string) (Product, error) {
	if value == "" {
		return Product{}, ErrNotFound
	}
	p, ok := s.items.Find(func(p Product) bool { return p.Slug == value })
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Categories returns the distinct product categories in first-seen order.
func (s *ProductService) Categories() []string {
	return distinct(s.items.All(), func(p Product) string { return p.Category })
}

// Featured returns featured products in stored order.
func (s *ProductService) Featured() []Product {
	return slices.DeleteFunc(s.items.All(), func(p Product) bool { return !p.Featured })
}

// ByCategory returns the products of one category in stored order.
func (s *ProductService) ByCategory(category string) []Product {
	return slices.DeleteFunc(s.items.All(), func(p Product) bool {
		return !strings.EqualFold(p.Category, category)
	})
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (Product, error) {
	p := Product{
		ID:               s.opts.newID(),
		Name:             strings.TrimSpace(in.Name),
		Category:         strings.TrimSpace(in.Category),
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Image:            in.Image,
		ImageAlt:         in.ImageAlt,
		Gallery:          cleanTags(in.Gallery),
		Price:            in.Price,
		Specifications:   cloneSpecs(in.Specifications),
		Featured:         in.Featured,
		ExternalLink:     strings.TrimSpace(in.ExternalLink),
		MetaTitle:        in.MetaTitle,
		MetaDescription:  in.MetaDescription,
		MetaKeywords:     in.MetaKeywords,
	}
	if in.DescriptionMarkdown != "" {
		html, err := sanitizer.Markdown(in.DescriptionMarkdown)
		if err != nil {
			return Product{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.Description = html
	}
	p.Description = sanitizer.ArticleHTML(p.Description)

	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	p.Slug = s.opts.slugs.Create(p.Name, in.Slug)

	if err := s.items.Append(ctx, p); err != nil {
		return Product{}, err
	}
	s.opts.log.InfoContext(ctx, "product created", slog.String("id", p.ID), slog.String("slug", p.Slug))
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	var rendered *string
	if patch.DescriptionMarkdown != nil && *patch.DescriptionMarkdown != "" {
		html, err := sanitizer.Markdown(*patch.DescriptionMarkdown)
		if err != nil {
			return Product{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rendered = &html
	}

	p, err := s.items.Update(ctx, func(p Product) bool { return p.ID == id }, func(cur Product) (Product, error) {
		next := cur
		if patch.Name != nil {
			next.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			next.Category = strings.TrimSpace(*patch.Category)
		}
		set(&next.Description, patch.Description)
		set(&next.Description, rendered)
		set(&next.ShortDescription, patch.ShortDescription)
		set(&next.Image, patch.Image)
		set(&next.ImageAlt, patch.ImageAlt)
		set(&next.Price, patch.Price)
		set(&next.Featured, patch.Featured)
		set(&next.ExternalLink, patch.ExternalLink)
		set(&next.MetaTitle, patch.MetaTitle)
		set(&next.MetaDescription, patch.MetaDescription)
		set(&next.MetaKeywords, patch.MetaKeywords)
		if patch.Gallery != nil {
			next.Gallery = cleanTags(*patch.Gallery)
		}
		if patch.Specifications != nil {
			next.Specifications = cloneSpecs(*patch.Specifications)
		}
		if patch.Description != nil || rendered != nil {
			next.Description = sanitizer.ArticleHTML(next.Description)
		}
		if err := validateProduct(next); err != nil {
			return Product{}, err
		}
		next.Slug = s.opts.slugs.Update(cur, slug.Patch{Label: patchLabel(patch.Name), Slug: patch.Slug})
		return next, nil
	})
	if err != nil {
		return Product{}, err
	}
	s.opts.log.InfoContext(ctx, "product updated", slog.String("id", p.ID), slog.String("slug", p.Slug))
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, func(p Product) bool { return p.ID == id }); err != nil {
		return err
	}
	s.opts.log.InfoContext(ctx, "product deleted", slog.String("id", id))
	return nil
}

func validateProduct(p Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

func cloneSpecs(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}
