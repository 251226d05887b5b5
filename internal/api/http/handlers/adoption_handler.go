package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mypaws/adoption-service/internal/api/dto"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/service"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// AdoptionHandler manages adoption listing endpoints.
type AdoptionHandler struct {
	service *service.AdoptionService
}

// NewAdoptionHandler constructs the handler.
func NewAdoptionHandler(adoptionService *service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{service: adoptionService}
}

// Create POST /adoptions.
func (h *AdoptionHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAdoptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	view, err := h.service.Create(c.Context(), principal.User.ID, service.CreateAdoptionInput{
		Title: req.Title,
		Fee:   req.Fee,
		Pet:   petInput(req.Pet),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": adoptionDetail(view)})
}

// Update PUT /adoptions/:id.
func (h *AdoptionHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateAdoptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	view, err := h.service.Update(c.Context(), principal.User.ID, c.Params("id"), service.UpdateAdoptionInput{
		Title: req.Title,
		Fee:   req.Fee,
		Pet:   petInput(req.Pet),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionDetail(view)})
}

// Delete DELETE /adoptions/:id.
func (h *AdoptionHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Search GET /adoptions. Public.
func (h *AdoptionHandler) Search(c *fiber.Ctx) error {
	filter := service.SearchFilter{
		PetTypeID: optionalQuery(c, "pet_type_id"),
		BreedID:   optionalQuery(c, "breed_id"),
		CityID:    optionalQuery(c, "city_id"),
	}
	filter.Limit, filter.Offset = pagination(c)
	listings, err := h.service.Search(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AdoptionSummary, 0, len(listings))
	for i := range listings {
		items = append(items, adoptionSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetBySlug GET /adoptions/:slug. Public detail page.
func (h *AdoptionHandler) GetBySlug(c *fiber.Ctx) error {
	view, err := h.service.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionDetail(view)})
}

// ListMine GET /adoptions/mine.
func (h *AdoptionHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	listings, err := h.service.ListMine(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AdoptionSummary, 0, len(listings))
	for i := range listings {
		items = append(items, adoptionSummary(&listings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetMine GET /adoptions/mine/:id.
func (h *AdoptionHandler) GetMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	view, err := h.service.GetOwned(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionDetail(view)})
}

// SubmitForReview POST /adoptions/:id/submit.
func (h *AdoptionHandler) SubmitForReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listing, err := h.service.SubmitForReview(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionSummary(listing)})
}

// MarkAdopted POST /adoptions/:id/adopted.
func (h *AdoptionHandler) MarkAdopted(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listing, err := h.service.MarkAdopted(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adoptionSummary(listing)})
}

// Inquire POST /adoptions/:id/inquiries. Public.
func (h *AdoptionHandler) Inquire(c *fiber.Ctx) error {
	if err := h.service.RecordInquiry(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func petInput(req dto.PetRequest) service.PetInput {
	faqs := make([]service.FAQInput, 0, len(req.FAQs))
	for _, faq := range req.FAQs {
		faqs = append(faqs, service.FAQInput{Question: faq.Question, Answer: faq.Answer})
	}
	return service.PetInput{
		PetTypeID:   req.PetTypeID,
		BreedID:     req.BreedID,
		CityID:      req.CityID,
		Name:        req.Name,
		Gender:      domain.PetGender(req.Gender),
		AgeMonths:   req.AgeMonths,
		Size:        req.Size,
		Color:       req.Color,
		Temperament: req.Temperament,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		FAQs:        faqs,
	}
}

func adoptionSummary(listing *domain.AdoptionListing) dto.AdoptionSummary {
	return dto.AdoptionSummary{
		ID:            listing.ID,
		PetID:         listing.PetID,
		Title:         listing.Title,
		Slug:          listing.Slug,
		Fee:           listing.Fee,
		Status:        listing.Status,
		IsFeatured:    listing.IsFeatured,
		FeaturedUntil: listing.FeaturedUntil,
		ViewCount:     listing.ViewCount,
		InquiryCount:  listing.InquiryCount,
		PublishedAt:   listing.PublishedAt,
		CreatedAt:     listing.CreatedAt,
	}
}

func adoptionDetail(view *service.AdoptionView) dto.AdoptionDetail {
	detail := dto.AdoptionDetail{
		AdoptionSummary: adoptionSummary(view.Listing),
		RejectionReason: view.Listing.RejectionReason,
		AdoptedAt:       view.Listing.AdoptedAt,
	}
	if view.Pet != nil {
		pet := petResponse(view.Pet)
		detail.Pet = &pet
	}
	return detail
}

func petResponse(pet *domain.Pet) dto.PetResponse {
	images := make([]dto.PetImageResponse, 0, len(pet.Images))
	for _, img := range pet.Images {
		images = append(images, dto.PetImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			Position:  img.Position,
			IsPrimary: img.IsPrimary,
		})
	}
	faqs := make([]dto.PetFAQResponse, 0, len(pet.FAQs))
	for _, faq := range pet.FAQs {
		faqs = append(faqs, dto.PetFAQResponse{
			ID:       faq.ID,
			Question: faq.Question,
			Answer:   faq.Answer,
			Position: faq.Position,
		})
	}
	return dto.PetResponse{
		ID:          pet.ID,
		PetTypeID:   pet.PetTypeID,
		BreedID:     pet.BreedID,
		CityID:      pet.CityID,
		Name:        pet.Name,
		Gender:      pet.Gender,
		AgeMonths:   pet.AgeMonths,
		Size:        pet.Size,
		Color:       pet.Color,
		Temperament: pet.Temperament,
		Description: pet.Description,
		Images:      images,
		FAQs:        faqs,
	}
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	if val := c.Query(key); val != "" {
		return &val
	}
	return nil
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
