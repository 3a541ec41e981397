package model

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	UserType    string `json:"userType"`
}

type RegisterResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

type PropertyRequest struct {
	Details           PropertyDetails   `json:"property_details"`
	RentalTerms       RentalTerms       `json:"rental_terms"`
	SellerInformation SellerInformation `json:"seller_information"`
	MoveInDate        *time.Time        `json:"move_in_date"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
