package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/progprogect/NutritionBot/models"
)

var ErrNothingRecognized = errors.New("no food items recognized")

// Extractor is the slice of the vision/language client the ingest
// pipeline needs.
type Extractor interface {
	ParseFoodText(ctx context.Context, text string) ([]ParsedItem, error)
	ParseFoodImage(ctx context.Context, imageURL, caption string) ([]ParsedItem, error)
	Transcribe(ctx context.Context, wav []byte, filename string) (string, error)
}

// Transcoder converts a voice note into WAV suitable for transcription.
type Transcoder interface {
	OggToWav(ctx context.Context, ogg []byte) ([]byte, error)
}

// IngestResult is what the user gets back after logging food.
type IngestResult struct {
	Entry      *models.FoodEntry `json:"entry"`
	Items      []models.FoodItem `json:"items"`
	Total      Macros            `json:"total"`
	Transcript string            `json:"transcript,omitempty"`
}

// IngestService runs the full text/photo/voice logging pipeline: persist
// the raw entry first, then extract, resolve grams, compute macros, and
// attach the items. The raw entry survives extraction failures so the
// user's intent is never lost.
type IngestService struct {
	users     *UserService
	entries   *EntryService
	extractor Extractor
	transcode Transcoder
	timeout   time.Duration
	loc       *time.Location
	log       *zap.SugaredLogger
}

func NewIngestService(
	users *UserService,
	entries *EntryService,
	extractor Extractor,
	transcode Transcoder,
	timeout time.Duration,
	loc *time.Location,
	log *zap.SugaredLogger,
) *IngestService {
	return &IngestService{
		users:     users,
		entries:   entries,
		extractor: extractor,
		transcode: transcode,
		timeout:   timeout,
		loc:       loc,
		log:       log,
	}
}

// LogText records a free-text food description.
func (s *IngestService) LogText(ctx context.Context, tgID, text string, now time.Time) (*IngestResult, error) {
	user, err := s.users.GetOrCreate(tgID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.CreateRaw(user.ID, now.In(s.loc), text)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	parsed, err := s.extractor.ParseFoodText(cctx, text)
	if err != nil {
		return nil, s.extractionFailed(entry, err)
	}
	return s.finish(entry, parsed, "")
}

// LogPhoto records a meal photo, optionally captioned.
func (s *IngestService) LogPhoto(ctx context.Context, tgID, imageURL, caption string, now time.Time) (*IngestResult, error) {
	user, err := s.users.GetOrCreate(tgID)
	if err != nil {
		return nil, err
	}
	raw := "[photo]"
	if caption != "" {
		raw = "[photo] " + caption
	}
	entry, err := s.entries.CreateRaw(user.ID, now.In(s.loc), raw)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	parsed, err := s.extractor.ParseFoodImage(cctx, imageURL, caption)
	if err != nil {
		return nil, s.extractionFailed(entry, err)
	}
	return s.finish(entry, parsed, "")
}

// LogVoice transcodes and transcribes a voice note, then runs the text
// pipeline on the transcript.
func (s *IngestService) LogVoice(ctx context.Context, tgID string, ogg []byte, now time.Time) (*IngestResult, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	wav, err := s.transcode.OggToWav(cctx, ogg)
	if err != nil {
		return nil, fmt.Errorf("transcode voice note: %w", err)
	}
	transcript, err := s.extractor.Transcribe(cctx, wav, "voice.wav")
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetOrCreate(tgID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.CreateRaw(user.ID, now.In(s.loc), transcript)
	if err != nil {
		return nil, err
	}

	parsed, err := s.extractor.ParseFoodText(cctx, transcript)
	if err != nil {
		return nil, s.extractionFailed(entry, err)
	}

	result, err := s.finish(entry, parsed, transcript)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *IngestService) extractionFailed(entry *models.FoodEntry, err error) error {
	// Entry stays as a raw record, the user can delete or retry.
	s.log.Warnw("extraction failed, raw entry retained",
		"entry_id", entry.ID, "error", err)
	return err
}

func (s *IngestService) finish(entry *models.FoodEntry, parsed []ParsedItem, transcript string) (*IngestResult, error) {
	if len(parsed) == 0 {
		return nil, s.extractionFailed(entry, ErrNothingRecognized)
	}

	items := make([]models.FoodItem, 0, len(parsed))
	var total Macros
	for _, p := range parsed {
		grams := ResolveGrams(ResolveInput{
			Qty:        p.Qty,
			Unit:       Unit(p.Unit),
			Density:    p.DensityGPerML,
			PieceGrams: p.DefaultPieceGrams,
			ModelGrams: p.ResolvedGrams,
		})
		m := MacrosFor(grams, p.Per100g)
		total = total.Add(m)
		items = append(items, models.FoodItem{
			EntryID:       entry.ID,
			Name:          p.Name,
			Qty:           p.Qty,
			Unit:          p.Unit,
			ResolvedGrams: grams,
			Kcal:          m.Kcal,
			Protein:       m.Protein,
			Fat:           m.Fat,
			Carbs:         m.Carbs,
			Fiber:         m.Fiber,
		})
	}

	if err := s.entries.AttachItems(entry.ID, items); err != nil {
		return nil, err
	}
	entry.Items = items
	return &IngestResult{
		Entry:      entry,
		Items:      items,
		Total:      total,
		Transcript: transcript,
	}, nil
}
