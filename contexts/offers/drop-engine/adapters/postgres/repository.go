package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"

	sourceService = "drop-engine"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateDrop(ctx context.Context, drop entities.Drop) error {
	if err := r.db.WithContext(ctx).Create(dropModelFromEntity(drop)).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

func (r *Repository) GetDrop(ctx context.Context, dropID string) (entities.Drop, error) {
	var row dropModel
	err := r.db.WithContext(ctx).
		Where("drop_id = ?", dropID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Drop{}, domainerrors.ErrDropNotFound
		}
		return entities.Drop{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateDrop(ctx context.Context, drop entities.Drop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current dropModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("drop_id = ?", drop.DropID).
			First(&current).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrDropNotFound
			}
			return err
		}

		updates := map[string]any{
			"title":          drop.Title,
			"description":    drop.Description,
			"image_url":      drop.ImageURL,
			"address":        drop.Address,
			"radius_meters":  drop.RadiusMeters,
			"total_quantity": drop.TotalQuantity,
			"start_time":     drop.StartTime.UTC(),
			"end_time":       drop.EndTime.UTC(),
			"is_active":      drop.IsActive,
			"updated_at":     drop.UpdatedAt.UTC(),
		}
		// Stock is owned by Reserve/Restore. A catalog save never writes the
		// remaining quantity it read; when the total moved, remaining shifts
		// by the same delta against the locked row, clamped to [0, total].
		if delta := drop.TotalQuantity - current.TotalQuantity; delta != 0 {
			updates["remaining_quantity"] = gorm.Expr(
				"LEAST(GREATEST(remaining_quantity + ?, 0), ?)", delta, drop.TotalQuantity,
			)
		}

		return tx.
			Model(&dropModel{}).
			Where("drop_id = ?", drop.DropID).
			Updates(updates).
			Error
	})
}

func (r *Repository) ListDrops(ctx context.Context, filter ports.DropListFilter) ([]entities.Drop, error) {
	tx := r.db.WithContext(ctx).Model(&dropModel{})
	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.CreatedBy != "" {
		tx = tx.Where("created_by = ?", filter.CreatedBy)
	}

	var rows []dropModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "start_time"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "drop_id"}}).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Drop, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CompleteDropsPastEnd(ctx context.Context, now time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}

	var completed []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []dropModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("is_active = ? AND end_time < ?", true, now.UTC()).
			Order("end_time ASC").
			Limit(limit).
			Find(&rows).
			Error; err != nil {
			return err
		}
		for _, row := range rows {
			if err := tx.
				Model(&dropModel{}).
				Where("drop_id = ?", row.DropID).
				Updates(map[string]any{
					"is_active":  false,
					"updated_at": now.UTC(),
				}).
				Error; err != nil {
				return err
			}
			completed = append(completed, row.DropID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// Reserve is the single authoritative stock mutation: a WHERE-guarded
// conditional decrement, serialized per drop row by the database.
func (r *Repository) Reserve(ctx context.Context, dropID string, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&dropModel{}).
		Where("drop_id = ? AND remaining_quantity >= ?", dropID, quantity).
		Update("remaining_quantity", gorm.Expr("remaining_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetDrop(ctx, dropID); err != nil {
			return err
		}
		return domainerrors.ErrInsufficientStock
	}
	return nil
}

func (r *Repository) Restore(ctx context.Context, dropID string, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&dropModel{}).
		Where("drop_id = ?", dropID).
		Update("remaining_quantity", gorm.Expr("LEAST(total_quantity, remaining_quantity + ?)", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDropNotFound
	}
	return nil
}

func (r *Repository) JoinWaitlist(ctx context.Context, entry entities.WaitlistEntry, event ports.WaitlistEvent) (entities.WaitlistEntry, error) {
	row := waitlistModelFromEntity(entry)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return appendWaitlistOutbox(tx, event)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return entities.WaitlistEntry{}, domainerrors.ErrAlreadyJoined
		}
		return entities.WaitlistEntry{}, err
	}
	entry.Sequence = row.Sequence
	return entry, nil
}

func (r *Repository) LeaveWaitlist(ctx context.Context, dropID string, userID string, event ports.WaitlistEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A pending claim pins the entry; checking inside the delete
		// transaction keeps a racing claim attempt from orphaning its claim.
		var pending int64
		if err := tx.
			Model(&claimModel{}).
			Where("drop_id = ? AND user_id = ? AND status = ?", dropID, userID, string(entities.ClaimStatusPending)).
			Count(&pending).
			Error; err != nil {
			return err
		}
		if pending > 0 {
			return domainerrors.ErrPendingClaimExists
		}
		result := tx.
			Where("drop_id = ? AND user_id = ?", dropID, userID).
			Delete(&waitlistModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotInWaitlist
		}
		return appendWaitlistOutbox(tx, event)
	})
}

func (r *Repository) GetWaitlistEntry(ctx context.Context, dropID string, userID string) (entities.WaitlistEntry, bool, error) {
	var row waitlistModel
	err := r.db.WithContext(ctx).
		Where("drop_id = ? AND user_id = ?", dropID, userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.WaitlistEntry{}, false, nil
		}
		return entities.WaitlistEntry{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListWaitlist(ctx context.Context, dropID string) ([]entities.WaitlistEntry, error) {
	var rows []waitlistModel
	if err := r.db.WithContext(ctx).
		Where("drop_id = ?", dropID).
		Order("joined_at ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.WaitlistEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListUserWaitlist(ctx context.Context, userID string) ([]entities.WaitlistEntry, error) {
	var rows []waitlistModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC, id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.WaitlistEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountWaitlist(ctx context.Context, dropID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&waitlistModel{}).
		Where("drop_id = ?", dropID).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) CreatePendingClaim(ctx context.Context, claim entities.Claim, event ports.ClaimEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The partial unique index on (drop_id, user_id) WHERE status =
		// 'pending' backs this check; the explicit count keeps the error
		// deterministic instead of surfacing through 23505 alone.
		var pending int64
		if err := tx.
			Model(&claimModel{}).
			Where("drop_id = ? AND user_id = ? AND status = ?", claim.DropID, claim.UserID, string(entities.ClaimStatusPending)).
			Count(&pending).
			Error; err != nil {
			return err
		}
		if pending > 0 {
			return domainerrors.ErrDuplicateClaim
		}
		if err := tx.Create(claimModelFromEntity(claim)).Error; err != nil {
			return err
		}
		return appendClaimOutbox(tx, event)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateClaim
		}
		return err
	}
	return nil
}

func (r *Repository) GetClaim(ctx context.Context, claimID string) (entities.Claim, error) {
	var row claimModel
	err := r.db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Claim{}, domainerrors.ErrClaimNotFound
		}
		return entities.Claim{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPendingClaim(ctx context.Context, dropID string, userID string) (entities.Claim, bool, error) {
	var row claimModel
	err := r.db.WithContext(ctx).
		Where("drop_id = ? AND user_id = ? AND status = ?", dropID, userID, string(entities.ClaimStatusPending)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Claim{}, false, nil
		}
		return entities.Claim{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListClaimsByUser(ctx context.Context, userID string) ([]entities.Claim, error) {
	var rows []claimModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Claim, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListClaims(ctx context.Context, filter ports.ClaimListFilter) ([]entities.Claim, error) {
	tx := r.db.WithContext(ctx).Model(&claimModel{})
	if filter.DropID != "" {
		tx = tx.Where("drop_id = ?", filter.DropID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []claimModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "claim_id"}}).
		Offset(filter.Offset).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Claim, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) FinalizeClaim(ctx context.Context, claim entities.Claim, event ports.ClaimEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row claimModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", claim.ClaimID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrClaimNotFound
			}
			return err
		}
		if row.Status != string(entities.ClaimStatusPending) {
			return domainerrors.ErrClaimNotPending
		}

		if err := tx.
			Model(&claimModel{}).
			Where("claim_id = ?", claim.ClaimID).
			Updates(map[string]any{
				"status":        string(claim.Status),
				"reject_reason": claim.RejectReason,
				"decided_at":    claim.DecidedAt,
				"updated_at":    claim.UpdatedAt.UTC(),
			}).
			Error; err != nil {
			return err
		}

		// Membership does not survive a terminal decision.
		if err := tx.
			Where("drop_id = ? AND user_id = ?", claim.DropID, claim.UserID).
			Delete(&waitlistModel{}).
			Error; err != nil {
			return err
		}
		return appendClaimOutbox(tx, event)
	})
}

func (r *Repository) Counts(ctx context.Context) (ports.EngineCounts, error) {
	var counts ports.EngineCounts

	var totalDrops int64
	if err := r.db.WithContext(ctx).Model(&dropModel{}).Count(&totalDrops).Error; err != nil {
		return ports.EngineCounts{}, err
	}
	counts.TotalDrops = int(totalDrops)

	var waitlistEntries int64
	if err := r.db.WithContext(ctx).Model(&waitlistModel{}).Count(&waitlistEntries).Error; err != nil {
		return ports.EngineCounts{}, err
	}
	counts.WaitlistEntries = int(waitlistEntries)

	type statusRow struct {
		Status string
		Total  int
		Units  int
	}
	var rows []statusRow
	if err := r.db.WithContext(ctx).
		Model(&claimModel{}).
		Select("status, COUNT(*) AS total, COALESCE(SUM(quantity), 0) AS units").
		Group("status").
		Scan(&rows).
		Error; err != nil {
		return ports.EngineCounts{}, err
	}
	for _, row := range rows {
		switch entities.ClaimStatus(row.Status) {
		case entities.ClaimStatusPending:
			counts.PendingClaims = row.Total
		case entities.ClaimStatusApproved:
			counts.ApprovedClaims = row.Total
			counts.UnitsApproved = row.Units
		case entities.ClaimStatusRejected:
			counts.RejectedClaims = row.Total
		}
	}
	return counts, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC, outbox_id ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		}).
		Error
}

func appendWaitlistOutbox(tx *gorm.DB, event ports.WaitlistEvent) error {
	data, err := json.Marshal(map[string]string{
		"drop_id": event.DropID,
		"user_id": event.UserID,
	})
	if err != nil {
		return err
	}
	return appendOutbox(tx, event.EventID, event.EventType, event.DropID, event.OccurredAt, data)
}

func appendClaimOutbox(tx *gorm.DB, event ports.ClaimEvent) error {
	data, err := json.Marshal(map[string]any{
		"claim_id": event.ClaimID,
		"drop_id":  event.DropID,
		"user_id":  event.UserID,
		"quantity": event.Quantity,
		"status":   event.Status,
		"reason":   event.Reason,
	})
	if err != nil {
		return err
	}
	return appendOutbox(tx, event.EventID, event.EventType, event.DropID, event.OccurredAt, data)
}

func appendOutbox(tx *gorm.DB, eventID string, eventType string, partitionKey string, occurredAt time.Time, data []byte) error {
	envelope := ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		SchemaVersion:    1,
		PartitionKeyPath: "drop_id",
		PartitionKey:     partitionKey,
		Data:             data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&outboxModel{
			OutboxID:     eventID,
			EventType:    eventType,
			PartitionKey: partitionKey,
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    occurredAt.UTC(),
		}).
		Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type dropModel struct {
	DropID            string    `gorm:"column:drop_id;primaryKey"`
	Title             string    `gorm:"column:title"`
	Description       string    `gorm:"column:description"`
	ImageURL          string    `gorm:"column:image_url"`
	Address           string    `gorm:"column:address"`
	Latitude          float64   `gorm:"column:latitude"`
	Longitude         float64   `gorm:"column:longitude"`
	RadiusMeters      float64   `gorm:"column:radius_meters"`
	TotalQuantity     int       `gorm:"column:total_quantity"`
	RemainingQuantity int       `gorm:"column:remaining_quantity"`
	StartTime         time.Time `gorm:"column:start_time"`
	EndTime           time.Time `gorm:"column:end_time"`
	IsActive          bool      `gorm:"column:is_active"`
	CreatedBy         string    `gorm:"column:created_by"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (dropModel) TableName() string {
	return "drops"
}

func dropModelFromEntity(drop entities.Drop) dropModel {
	return dropModel{
		DropID:            drop.DropID,
		Title:             drop.Title,
		Description:       drop.Description,
		ImageURL:          drop.ImageURL,
		Address:           drop.Address,
		Latitude:          drop.Latitude,
		Longitude:         drop.Longitude,
		RadiusMeters:      drop.RadiusMeters,
		TotalQuantity:     drop.TotalQuantity,
		RemainingQuantity: drop.RemainingQuantity,
		StartTime:         drop.StartTime.UTC(),
		EndTime:           drop.EndTime.UTC(),
		IsActive:          drop.IsActive,
		CreatedBy:         drop.CreatedBy,
		CreatedAt:         drop.CreatedAt.UTC(),
		UpdatedAt:         drop.UpdatedAt.UTC(),
	}
}

func (m dropModel) toEntity() entities.Drop {
	return entities.Drop{
		DropID:            m.DropID,
		Title:             m.Title,
		Description:       m.Description,
		ImageURL:          m.ImageURL,
		Address:           m.Address,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		RadiusMeters:      m.RadiusMeters,
		TotalQuantity:     m.TotalQuantity,
		RemainingQuantity: m.RemainingQuantity,
		StartTime:         m.StartTime.UTC(),
		EndTime:           m.EndTime.UTC(),
		IsActive:          m.IsActive,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

type waitlistModel struct {
	Sequence uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	EntryID  string    `gorm:"column:entry_id"`
	DropID   string    `gorm:"column:drop_id"`
	UserID   string    `gorm:"column:user_id"`
	JoinedAt time.Time `gorm:"column:joined_at"`
}

func (waitlistModel) TableName() string {
	return "waitlist_entries"
}

func waitlistModelFromEntity(entry entities.WaitlistEntry) waitlistModel {
	return waitlistModel{
		EntryID:  entry.EntryID,
		DropID:   entry.DropID,
		UserID:   entry.UserID,
		JoinedAt: entry.JoinedAt.UTC(),
	}
}

func (m waitlistModel) toEntity() entities.WaitlistEntry {
	return entities.WaitlistEntry{
		EntryID:  m.EntryID,
		DropID:   m.DropID,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt.UTC(),
		Sequence: m.Sequence,
	}
}

type claimModel struct {
	ClaimID          string     `gorm:"column:claim_id;primaryKey"`
	DropID           string     `gorm:"column:drop_id"`
	UserID           string     `gorm:"column:user_id"`
	Quantity         int        `gorm:"column:quantity"`
	Status           string     `gorm:"column:status"`
	ClaimLatitude    float64    `gorm:"column:claim_latitude"`
	ClaimLongitude   float64    `gorm:"column:claim_longitude"`
	DistanceMeters   float64    `gorm:"column:distance_meters"`
	VerificationCode string     `gorm:"column:verification_code"`
	RejectReason     string     `gorm:"column:reject_reason"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	DecidedAt        *time.Time `gorm:"column:decided_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (claimModel) TableName() string {
	return "drop_claims"
}

func claimModelFromEntity(claim entities.Claim) claimModel {
	return claimModel{
		ClaimID:          claim.ClaimID,
		DropID:           claim.DropID,
		UserID:           claim.UserID,
		Quantity:         claim.Quantity,
		Status:           string(claim.Status),
		ClaimLatitude:    claim.ClaimLatitude,
		ClaimLongitude:   claim.ClaimLongitude,
		DistanceMeters:   claim.DistanceMeters,
		VerificationCode: claim.VerificationCode,
		RejectReason:     claim.RejectReason,
		CreatedAt:        claim.CreatedAt.UTC(),
		DecidedAt:        claim.DecidedAt,
		UpdatedAt:        claim.UpdatedAt.UTC(),
	}
}

func (m claimModel) toEntity() entities.Claim {
	return entities.Claim{
		ClaimID:          m.ClaimID,
		DropID:           m.DropID,
		UserID:           m.UserID,
		Quantity:         m.Quantity,
		Status:           entities.ClaimStatus(m.Status),
		ClaimLatitude:    m.ClaimLatitude,
		ClaimLongitude:   m.ClaimLongitude,
		DistanceMeters:   m.DistanceMeters,
		VerificationCode: m.VerificationCode,
		RejectReason:     m.RejectReason,
		CreatedAt:        m.CreatedAt.UTC(),
		DecidedAt:        m.DecidedAt,
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "drop_engine_outbox"
}
