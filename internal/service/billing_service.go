package service

import (
	"time"

	"go-confession-board/internal/billing"
	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"
	"go-confession-board/pkg/config"
)

// historyFallback is how far back the history walk starts when the profile
// row carries no registration marker.
const historyFallback = 6 // months

// BillingService re-derives monthly penalty/reward figures from raw
// confession rows and renders the invoice PDF.
type BillingService struct {
	confessionRepo *repository.ConfessionRepository
	profileRepo    *repository.ProfileRepository
	userRepo       *repository.UserRepository
}

func NewBillingService(
	confessionRepo *repository.ConfessionRepository,
	profileRepo *repository.ProfileRepository,
	userRepo *repository.UserRepository,
) *BillingService {
	return &BillingService{
		confessionRepo: confessionRepo,
		profileRepo:    profileRepo,
		userRepo:       userRepo,
	}
}

// MonthlySummary is the billing page payload for one month.
type MonthlySummary struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	Penalties    []billing.Bucket   `json:"penalties"`
	Rewards      []billing.Bucket   `json:"rewards"`
	PenaltyTotal uint               `json:"penalty_total"`
	RewardTotal  uint               `json:"reward_total"`
	Balance      int64              `json:"balance"`
	Daily        []billing.DayPoint `json:"daily"`
}

// HistoryRow is one month of the billing history list.
type HistoryRow struct {
	Year   int  `json:"year"`
	Month  int  `json:"month"`
	Count  int  `json:"count"`
	Amount uint `json:"amount"`
}

// GetMonthlySummary aggregates the month's penalties and rewards plus the
// daily cumulative penalty trend.
func (s *BillingService) GetMonthlySummary(userID uint, year int, month time.Month) (*MonthlySummary, error) {
	loc := time.Local
	start, end := billing.MonthInterval(year, month, loc)

	penaltyRows, err := s.confessionRepo.FindPenalties(userID, start, end)
	if err != nil {
		return nil, err
	}
	rewardRows, err := s.confessionRepo.FindRewards(userID, start, end)
	if err != nil {
		return nil, err
	}

	penaltyEntries := confessionEntries(penaltyRows)
	rewardEntries := confessionEntries(rewardRows)

	penalties := billing.Aggregate(penaltyEntries)
	rewards := billing.Aggregate(rewardEntries)
	penaltyTotal := billing.Total(penalties)
	rewardTotal := billing.Total(rewards)

	return &MonthlySummary{
		Year:         year,
		Month:        int(month),
		Penalties:    penalties,
		Rewards:      rewards,
		PenaltyTotal: penaltyTotal,
		RewardTotal:  rewardTotal,
		Balance:      int64(rewardTotal) - int64(penaltyTotal),
		Daily:        billing.DailyCumulative(penaltyEntries, year, month, loc),
	}, nil
}

// GetHistory walks month by month from the user's registration marker (the
// profile's updated_at, or a fixed number of months back when absent) to the
// present, keeping only months with at least one penalty confession, newest
// first.
func (s *BillingService) GetHistory(userID uint) ([]HistoryRow, error) {
	loc := time.Local
	now := time.Now().In(loc)

	from := now.AddDate(0, -historyFallback, 0)
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil && !profile.UpdatedAt.IsZero() {
		from = profile.UpdatedAt.In(loc)
	}

	rows := make([]HistoryRow, 0)
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	for !cursor.After(last) {
		start, end := billing.MonthInterval(cursor.Year(), cursor.Month(), loc)
		confessions, err := s.confessionRepo.FindPenalties(userID, start, end)
		if err != nil {
			return nil, err
		}

		entries := confessionEntries(confessions)
		if len(entries) > 0 {
			buckets := billing.Aggregate(entries)
			rows = append(rows, HistoryRow{
				Year:   cursor.Year(),
				Month:  int(cursor.Month()),
				Count:  len(entries),
				Amount: billing.Total(buckets),
			})
		}
		cursor = cursor.AddDate(0, 1, 0)
	}

	// newest first
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// BuildInvoice assembles the month's penalty invoice for the user.
func (s *BillingService) BuildInvoice(userID uint, year int, month time.Month) (*billing.Invoice, error) {
	loc := time.Local
	start, end := billing.MonthInterval(year, month, loc)

	confessions, err := s.confessionRepo.FindPenalties(userID, start, end)
	if err != nil {
		return nil, err
	}
	buckets := billing.Aggregate(confessionEntries(confessions))

	userName, err := s.billingName(userID)
	if err != nil {
		return nil, err
	}

	return &billing.Invoice{
		Year:     year,
		Month:    month,
		UserName: userName,
		Lines:    buckets,
		Total:    billing.Total(buckets),
		IssuedAt: time.Now().In(loc),
	}, nil
}

// RenderInvoicePDF produces the document bytes and its download filename.
func (s *BillingService) RenderInvoicePDF(userID uint, year int, month time.Month) ([]byte, string, error) {
	invoice, err := s.BuildInvoice(userID, year, month)
	if err != nil {
		return nil, "", err
	}

	data, err := billing.RenderPDF(*invoice, config.GlobalConfig.Invoice.FontPath)
	if err != nil {
		return nil, "", err
	}
	return data, billing.FileName(year, month), nil
}

func (s *BillingService) billingName(userID uint) (string, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return "", err
	}
	if profile != nil && profile.Name != "" {
		return profile.Name, nil
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return user.Email, nil
}

// confessionEntries maps confession rows to aggregation entries, dropping
// rows whose rule or group has been deleted since.
func confessionEntries(confessions []model.Confession) []billing.Entry {
	entries := make([]billing.Entry, 0, len(confessions))
	for _, c := range confessions {
		if c.Rule.ID == 0 || c.Post.Group.ID == 0 {
			continue
		}
		entries = append(entries, billing.Entry{
			RuleID:    c.RuleID,
			RuleTitle: c.Rule.Title,
			GroupName: c.Post.Group.Name,
			Amount:    c.Rule.FineAmount,
			CreatedAt: c.CreatedAt,
		})
	}
	return entries
}
