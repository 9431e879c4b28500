package transport

import (
	"time"

	"estate_portal_backend/internal/listings/domain"

	"github.com/google/uuid"
)

// Browse

type BrowseRequest struct {
	Search       string `form:"q" validate:"max=200"`
	PropertyType string `form:"propertyType" validate:"omitempty,oneof=Residential Commercial residential commercial"`
	Location     string `form:"location" validate:"max=100"`
	Possession   string `form:"possession" validate:"max=40"`
	Builder      string `form:"builder" validate:"max=100"`
	BHK          string `form:"bhk" validate:"omitempty,bhk"`
	Amenities    string `form:"amenities" validate:"max=500"`
	PriceRange   string `form:"priceRange" validate:"max=40"`
	PriceMin     *int64 `form:"priceMin" validate:"omitempty,min=0"`
	PriceMax     *int64 `form:"priceMax" validate:"omitempty,min=0"`
	Sort         string `form:"sort" validate:"omitempty,sortkey"`
	Page         int    `form:"page" validate:"omitempty,min=1"`
	PageSize     int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type ListingResponse struct {
	domain.Listing
	PriceLabel string `json:"priceLabel"`
}

type ListingPageResponse struct {
	Items      []ListingResponse `json:"items"`
	TotalCount int               `json:"totalCount"`
	PageCount  int               `json:"pageCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Sort       domain.SortKey    `json:"sort"`
}

type ListingListResponse struct {
	Items []ListingResponse `json:"items"`
}

type FacetsResponse = domain.Facets

// Builder writes

type LocationRequest struct {
	City    string `json:"city" validate:"required,max=100"`
	Area    string `json:"area" validate:"max=100"`
	SubArea string `json:"subArea" validate:"max=100"`
	Pincode string `json:"pincode" validate:"omitempty,numeric,len=6"`
}

type FloorPlanRequest struct {
	Type  string `json:"type" validate:"required,max=40"`
	Area  int    `json:"area" validate:"min=0"`
	Price int64  `json:"price" validate:"min=0"`
}

type LandmarkRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Distance string `json:"distance" validate:"max=40"`
}

type ListingRequest struct {
	Name             string             `json:"name" validate:"required,min=1,max=200"`
	BuilderName      string             `json:"builderName" validate:"max=200"`
	Location         LocationRequest    `json:"location" validate:"required"`
	PriceMin         int64              `json:"priceMin" validate:"min=0"`
	PriceMax         int64              `json:"priceMax" validate:"min=0,gtefield=PriceMin"`
	PropertyType     string             `json:"propertyType" validate:"required,oneof=Residential Commercial"`
	Configurations   []string           `json:"configurations" validate:"max=20,dive,required,max=40"`
	PossessionDate   *domain.Date       `json:"possessionDate"`
	PossessionStatus string             `json:"possessionStatus" validate:"omitempty,oneof='Ready to Move' 'Under Construction' 'New Launch' Resale"`
	ReraID           string             `json:"reraId" validate:"max=60"`
	Amenities        []string           `json:"amenities" validate:"max=60,dive,required,max=60"`
	Images           []string           `json:"images" validate:"max=40,dive,required,max=500"`
	Brochure         string             `json:"brochure" validate:"max=500"`
	ContactEmail     string             `json:"contactEmail" validate:"omitempty,email,max=254"`
	Description      string             `json:"description" validate:"max=5000"`
	Featured         bool               `json:"featured"`
	AreaSqFt         int                `json:"area" validate:"min=0"`
	Bedrooms         int                `json:"bedrooms" validate:"min=0,max=50"`
	Bathrooms        int                `json:"bathrooms" validate:"min=0,max=50"`
	TotalUnits       int                `json:"totalUnits" validate:"min=0"`
	AvailableUnits   int                `json:"availableUnits" validate:"min=0"`
	FloorPlans       []FloorPlanRequest `json:"floorPlans" validate:"max=30,dive"`
	NearbyLandmarks  []LandmarkRequest  `json:"nearbyLandmarks" validate:"max=30,dive"`
	Status           string             `json:"status" validate:"omitempty,oneof=draft active"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active sold inactive"`
}

type PresignMediaRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=image floorPlan brochure"`
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignMediaResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type StatusChangeResponse struct {
	ID     uuid.UUID     `json:"id"`
	Status domain.Status `json:"status"`
}

type AnalyticsResponse = domain.Analytics
