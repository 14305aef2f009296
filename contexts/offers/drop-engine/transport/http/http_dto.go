package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateDropRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	Address       string  `json:"address,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  float64 `json:"radius_meters,omitempty"`
	TotalQuantity int     `json:"total_quantity"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
}

type UpdateDropRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Address       *string  `json:"address,omitempty"`
	RadiusMeters  *float64 `json:"radius_meters,omitempty"`
	TotalQuantity *int     `json:"total_quantity,omitempty"`
	StartTime     *string  `json:"start_time,omitempty"`
	EndTime       *string  `json:"end_time,omitempty"`
}

type DropDTO struct {
	DropID            string  `json:"drop_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	ImageURL          string  `json:"image_url,omitempty"`
	Address           string  `json:"address,omitempty"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	RadiusMeters      float64 `json:"radius_meters"`
	TotalQuantity     int     `json:"total_quantity"`
	RemainingQuantity int     `json:"remaining_quantity"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	IsActive          bool    `json:"is_active"`
	Phase             string  `json:"phase"`
	CreatedBy         string  `json:"created_by"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type DropResponse struct {
	Item DropDTO `json:"item"`
}

type ListDropsResponse struct {
	Items []DropDTO `json:"items"`
}

type NearbyDropDTO struct {
	DropDTO
	DistanceMeters float64 `json:"distance_meters"`
}

type NearbyDropsResponse struct {
	Items []NearbyDropDTO `json:"items"`
}

type ClaimDTO struct {
	ClaimID          string  `json:"claim_id"`
	DropID           string  `json:"drop_id"`
	UserID           string  `json:"user_id"`
	Quantity         int     `json:"quantity"`
	Status           string  `json:"status"`
	DistanceMeters   float64 `json:"distance_meters"`
	VerificationCode string  `json:"verification_code,omitempty"`
	RejectReason     string  `json:"reject_reason,omitempty"`
	CreatedAt        string  `json:"created_at"`
	DecidedAt        string  `json:"decided_at,omitempty"`
}

type DropStatusResponse struct {
	Item          DropDTO   `json:"item"`
	InWaitlist    bool      `json:"in_waitlist"`
	Position      int       `json:"position,omitempty"`
	WaitlistCount int       `json:"waitlist_count"`
	Claim         *ClaimDTO `json:"claim,omitempty"`
}

type JoinWaitlistResponse struct {
	DropID   string `json:"drop_id"`
	UserID   string `json:"user_id"`
	Position int    `json:"position"`
	JoinedAt string `json:"joined_at"`
}

type LeaveWaitlistResponse struct {
	DropID string `json:"drop_id"`
	UserID string `json:"user_id"`
	Left   bool   `json:"left"`
}

type WaitlistPositionResponse struct {
	DropID        string `json:"drop_id"`
	UserID        string `json:"user_id"`
	Position      int    `json:"position"`
	WaitlistCount int    `json:"waitlist_count"`
}

type WaitlistCountResponse struct {
	DropID        string `json:"drop_id"`
	WaitlistCount int    `json:"waitlist_count"`
}

type MyWaitlistItemDTO struct {
	DropID   string `json:"drop_id"`
	Position int    `json:"position"`
	JoinedAt string `json:"joined_at"`
}

type MyWaitlistResponse struct {
	Items []MyWaitlistItemDTO `json:"items"`
}

type AttemptClaimRequest struct {
	Quantity  int     `json:"quantity"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ClaimResponse struct {
	Item ClaimDTO `json:"item"`
}

type ListClaimsResponse struct {
	Items []ClaimDTO `json:"items"`
}

type DecideClaimRequest struct {
	Approve bool `json:"approve"`
}

type DecideClaimResponse struct {
	Item         ClaimDTO `json:"item"`
	AutoRejected bool     `json:"auto_rejected,omitempty"`
}

type StatsResponse struct {
	TotalDrops      int `json:"total_drops"`
	UpcomingDrops   int `json:"upcoming_drops"`
	ActiveDrops     int `json:"active_drops"`
	PastDrops       int `json:"past_drops"`
	WaitlistEntries int `json:"waitlist_entries"`
	PendingClaims   int `json:"pending_claims"`
	ApprovedClaims  int `json:"approved_claims"`
	RejectedClaims  int `json:"rejected_claims"`
	UnitsApproved   int `json:"units_approved"`
}
