package models

import (
	"time"

	"spacefinders/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User represents users table
type User struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Username  string            `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string            `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone     string            `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Password  string            `gorm:"size:255;not null" json:"-"`
	Address   string            `gorm:"size:255" json:"address"`
	Role      domain.UserRole   `gorm:"size:20;not null;default:'CLIENT'" json:"role"`
	Status    domain.UserStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Listings
// ============================================================

// Address represents addresses table (owned 1:1 by a property)
type Address struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BuildingNo string `gorm:"size:20" json:"building_no"`
	Street     string `gorm:"size:100" json:"street"`
	City       string `gorm:"size:50;not null" json:"city"`
	State      string `gorm:"size:50" json:"state"`
	Country    string `gorm:"size:50;not null" json:"country"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
}

func (Address) TableName() string {
	return "addresses"
}

// Property represents properties table
type Property struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	HostID      uint                  `gorm:"not null;index" json:"host_id"`
	Name        string                `gorm:"size:100;not null" json:"name"`
	Description string                `gorm:"type:text" json:"description"`
	Rooms       int                   `gorm:"not null" json:"rooms"`
	Bathrooms   int                   `gorm:"not null" json:"bathrooms"`
	MaxGuests   int                   `gorm:"not null" json:"max_guests"`
	PricePerDay float64               `gorm:"type:decimal(10,2);not null" json:"price_per_day"`
	ImageURL    string                `gorm:"size:500" json:"image_url"`
	Status      domain.PropertyStatus `gorm:"size:20;not null;default:'AVAILABLE';index" json:"status"`
	Rate        float64               `gorm:"type:decimal(3,2);default:0" json:"rate"`
	RatingCount int                   `gorm:"default:0" json:"rating_count"`

	HasWifi        bool `gorm:"default:false" json:"has_wifi"`
	HasParking     bool `gorm:"default:false" json:"has_parking"`
	HasPool        bool `gorm:"default:false" json:"has_pool"`
	HasAC          bool `gorm:"default:false" json:"has_ac"`
	HasHeater      bool `gorm:"default:false" json:"has_heater"`
	HasPetFriendly bool `gorm:"default:false" json:"has_pet_friendly"`

	AddressID uint      `gorm:"not null" json:"address_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Host    *User    `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyResponse DTO (listing view)
type PropertyResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rooms       int     `json:"rooms"`
	Bathrooms   int     `json:"bathrooms"`
	MaxGuests   int     `json:"max_guests"`
	PricePerDay float64 `json:"price_per_day"`
	ImageURL    string  `json:"image_url"`
	Status      string  `json:"status"`
	Rate        float64 `json:"rate"`
	RatingCount int     `json:"rating_count"`

	HasWifi        bool `json:"has_wifi"`
	HasParking     bool `json:"has_parking"`
	HasPool        bool `json:"has_pool"`
	HasAC          bool `json:"has_ac"`
	HasHeater      bool `json:"has_heater"`
	HasPetFriendly bool `json:"has_pet_friendly"`

	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

func (p *Property) ToResponse() *PropertyResponse {
	resp := &PropertyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Rooms:          p.Rooms,
		Bathrooms:      p.Bathrooms,
		MaxGuests:      p.MaxGuests,
		PricePerDay:    p.PricePerDay,
		ImageURL:       p.ImageURL,
		Status:         string(p.Status),
		Rate:           p.Rate,
		RatingCount:    p.RatingCount,
		HasWifi:        p.HasWifi,
		HasParking:     p.HasParking,
		HasPool:        p.HasPool,
		HasAC:          p.HasAC,
		HasHeater:      p.HasHeater,
		HasPetFriendly: p.HasPetFriendly,
	}

	if p.Address != nil {
		resp.City = p.Address.City
		resp.State = p.Address.State
		resp.Country = p.Address.Country
	}

	return resp
}

// PropertyDetailResponse DTO (detail view with full address and host contact)
type PropertyDetailResponse struct {
	PropertyResponse
	BuildingNo string `json:"building_no"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	HostID     uint   `json:"host_id"`
	HostName   string `json:"host_name,omitempty"`
	HostPhone  string `json:"host_phone,omitempty"`
}

func (p *Property) ToDetailResponse() *PropertyDetailResponse {
	resp := &PropertyDetailResponse{
		PropertyResponse: *p.ToResponse(),
		HostID:           p.HostID,
	}

	if p.Address != nil {
		resp.BuildingNo = p.Address.BuildingNo
		resp.Street = p.Address.Street
		resp.PostalCode = p.Address.PostalCode
	}
	if p.Host != nil {
		resp.HostName = p.Host.Username
		resp.HostPhone = p.Host.Phone
	}

	return resp
}

// ============================================================
// Bookings
// ============================================================

// Booking represents bookings table
type Booking struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	PropertyID    uint                 `gorm:"not null;index" json:"property_id"`
	UserID        uint                 `gorm:"not null;index" json:"user_id"`
	CheckinDate   time.Time            `gorm:"type:date;not null" json:"checkin_date"`
	CheckoutDate  time.Time            `gorm:"type:date;not null" json:"checkout_date"`
	Status        domain.BookingStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	PaymentStatus bool                 `gorm:"default:false" json:"payment_status"`
	HasExtraCot   bool                 `gorm:"default:false" json:"has_extra_cot"`
	HasDeepClean  bool                 `gorm:"default:false" json:"has_deep_clean"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingResponse DTO
type BookingResponse struct {
	ID            uint      `json:"id"`
	PropertyID    uint      `json:"property_id"`
	UserID        uint      `json:"user_id"`
	CheckinDate   time.Time `json:"checkin_date"`
	CheckoutDate  time.Time `json:"checkout_date"`
	Status        string    `json:"status"`
	PaymentStatus bool      `json:"payment_status"`
	HasExtraCot   bool      `json:"has_extra_cot"`
	HasDeepClean  bool      `json:"has_deep_clean"`
	PropertyName  string    `json:"property_name,omitempty"`
	PropertyImage string    `json:"property_image,omitempty"`
	City          string    `json:"city,omitempty"`
	Username      string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		UserID:        b.UserID,
		CheckinDate:   b.CheckinDate,
		CheckoutDate:  b.CheckoutDate,
		Status:        string(b.Status),
		PaymentStatus: b.PaymentStatus,
		HasExtraCot:   b.HasExtraCot,
		HasDeepClean:  b.HasDeepClean,
		CreatedAt:     b.CreatedAt,
	}

	if b.Property != nil {
		resp.PropertyName = b.Property.Name
		resp.PropertyImage = b.Property.ImageURL
		if b.Property.Address != nil {
			resp.City = b.Property.Address.City
		}
	}
	if b.User != nil {
		resp.Username = b.User.Username
	}

	return resp
}

// ============================================================
// Complaints
// ============================================================

// Complaint represents complaints table
type Complaint struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	UserID      uint                   `gorm:"not null;index" json:"user_id"`
	BookingID   *uint                  `gorm:"index" json:"booking_id"`
	Type        domain.ComplaintType   `gorm:"size:20;not null" json:"type"`
	Description string                 `gorm:"type:text;not null" json:"description"`
	Status      domain.ComplaintStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	FiledAt     time.Time              `gorm:"not null" json:"filed_at"`
	CreatedAt   time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintResponse DTO
type ComplaintResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	BookingID   *uint     `json:"booking_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	FiledAt     time.Time `json:"filed_at"`
	Username    string    `json:"username,omitempty"`
}

func (c *Complaint) ToResponse() *ComplaintResponse {
	resp := &ComplaintResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		BookingID:   c.BookingID,
		Type:        string(c.Type),
		Description: c.Description,
		Status:      string(c.Status),
		FiledAt:     c.FiledAt,
	}

	if c.User != nil {
		resp.Username = c.User.Username
	}

	return resp
}

// ============================================================
// Audit trail
// ============================================================

// Audit represents the append-only audit_logs table.
// Rows are immutable once written; there is no update or delete path.
type Audit struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	UserID      uint               `gorm:"not null;index" json:"user_id"`
	Action      domain.AuditAction `gorm:"size:20;not null" json:"action"`
	Description string             `gorm:"size:255" json:"description"`
	IPAddress   string             `gorm:"size:50" json:"ip_address"`
	Timestamp   time.Time          `gorm:"not null;index" json:"timestamp"`
}

func (Audit) TableName() string {
	return "audit_logs"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Address{},
		&Property{},
		&Booking{},
		&Complaint{},
		&Audit{},
	)
}
