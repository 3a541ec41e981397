package model

import "time"

type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
)

type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zip_code"`
	Landmarks []string `json:"landmarks"`
}

type Size struct {
	SquareFootage float64 `json:"square_footage"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
}

type Amenities struct {
	InUnit   []string `json:"in_unit"`
	Building []string `json:"building"`
	Outdoor  []string `json:"outdoor"`
}

type PropertyDetails struct {
	PropertyType PropertyType `json:"property_type"`
	Location     Location     `json:"location"`
	Size         Size         `json:"size"`
	Condition    string       `json:"condition"`
	Furnishing   string       `json:"furnishing"`
	Amenities    Amenities    `json:"amenities"`
}

type Parking struct {
	Available      bool    `json:"available"`
	Cost           float64 `json:"cost"`
	IncludedInRent bool    `json:"included_in_rent"`
}

type RentalTerms struct {
	RentAmount                 float64  `json:"rent_amount"`
	LeaseDuration              string   `json:"lease_duration"`
	SecurityDeposit            float64  `json:"security_deposit"`
	UtilitiesIncluded          []string `json:"utilities_included"`
	UtilitiesTenantResponsible []string `json:"utilities_tenant_responsible"`
	Parking                    Parking  `json:"parking"`
}

type SellerInformation struct {
	ContactName string `json:"contact_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type Property struct {
	ID                string            `json:"id"`
	SellerID          string            `json:"seller_id"`
	Details           PropertyDetails   `json:"property_details"`
	RentalTerms       RentalTerms       `json:"rental_terms"`
	SellerInformation SellerInformation `json:"seller_information"`
	MoveInDate        time.Time         `json:"move_in_date"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type PropertyList struct {
	Items []Property `json:"items"`
}
