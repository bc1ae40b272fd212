package services

import (
	"context"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes. Each keeps its rows in a map keyed by ID and
// hands out copies so tests can assert that failed operations left nothing
// mutated.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	cp := *u
	r.users[u.ID] = &cp
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := make([]*models.User, 0, len(r.users))
	for id := uint(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			cp := *u
			all = append(all, &cp)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[uint]*models.RefreshToken{}, nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	t, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for id, t := range r.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeRefreshTokenRepo) activeCount(userID uint) int {
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			n++
		}
	}
	return n
}

// tokenFor builds a live refresh token row for a user
func tokenFor(userID uint) *models.RefreshToken {
	return &models.RefreshToken{
		UserID:    userID,
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

type fakePropertyRepo struct {
	properties map[uint]*models.Property
	nextID     uint
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: map[uint]*models.Property{}, nextID: 1}
}

func (r *fakePropertyRepo) add(p *models.Property) *models.Property {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	cp := *p
	r.properties[p.ID] = &cp
	return p
}

func (r *fakePropertyRepo) Create(ctx context.Context, property *models.Property) error {
	r.add(property)
	return nil
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, property *models.Property) error {
	if _, ok := r.properties[property.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *property
	r.properties[property.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) ListByHost(ctx context.Context, hostID uint) ([]*models.Property, error) {
	var out []*models.Property
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.properties[id]; ok && p.HostID == hostID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListByHostAndStatus(ctx context.Context, hostID uint, status domain.PropertyStatus) ([]*models.Property, error) {
	var out []*models.Property
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.properties[id]; ok && p.HostID == hostID && p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	var n int64
	for _, p := range r.properties {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeBookingRepo struct {
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uint]*models.Booking{}, nextID: 1}
}

func (r *fakeBookingRepo) add(b *models.Booking) *models.Booking {
	if b.ID == 0 {
		b.ID = r.nextID
		r.nextID++
	} else if b.ID >= r.nextID {
		r.nextID = b.ID + 1
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return b
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.add(booking)
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) ListByProperty(ctx context.Context, propertyID uint) ([]*models.Booking, error) {
	var out []*models.Booking
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.bookings[id]; ok && b.PropertyID == propertyID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error) {
	var out []*models.Booking
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.bookings[id]; ok && b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByHost(ctx context.Context, hostID uint) ([]*models.Booking, error) {
	var out []*models.Booking
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.bookings[id]; ok && b.Property != nil && b.Property.HostID == hostID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CompleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == domain.BookingConfirmed && b.CheckoutDate.Before(time.Now()) {
			b.Status = domain.BookingCompleted
			n++
		}
	}
	return n, nil
}

type fakeComplaintRepo struct {
	complaints map[uint]*models.Complaint
	nextID     uint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: map[uint]*models.Complaint{}, nextID: 1}
}

func (r *fakeComplaintRepo) Create(ctx context.Context, complaint *models.Complaint) error {
	complaint.ID = r.nextID
	r.nextID++
	cp := *complaint
	r.complaints[complaint.ID] = &cp
	return nil
}

func (r *fakeComplaintRepo) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	c, ok := r.complaints[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeComplaintRepo) Update(ctx context.Context, complaint *models.Complaint) error {
	if _, ok := r.complaints[complaint.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *complaint
	r.complaints[complaint.ID] = &cp
	return nil
}

func (r *fakeComplaintRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Complaint, error) {
	var out []*models.Complaint
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.complaints[id]; ok && c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeComplaintRepo) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*models.Complaint, error) {
	var out []*models.Complaint
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.complaints[id]; ok && c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeComplaintRepo) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error) {
	var n int64
	for _, c := range r.complaints {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeAuditRepo struct {
	records []*models.Audit
	failing bool
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) Create(ctx context.Context, record *models.Audit) error {
	if r.failing {
		return gorm.ErrInvalidDB
	}
	cp := *record
	cp.ID = uint(len(r.records) + 1)
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeAuditRepo) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Audit, int64, error) {
	var out []*models.Audit
	for _, rec := range r.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *fakeAuditRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if !rec.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}

// byAction filters the recorded audit entries
func (r *fakeAuditRepo) byAction(action domain.AuditAction) []*models.Audit {
	var out []*models.Audit
	for _, rec := range r.records {
		if rec.Action == action {
			out = append(out, rec)
		}
	}
	return out
}
