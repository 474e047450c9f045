package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/penwyp/go-horti/internal/config"
	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/core/watering"
	"github.com/penwyp/go-horti/internal/data/parser"
	"github.com/penwyp/go-horti/internal/util"
)

// Loader builds plant records for identities found under the user directory.
type Loader struct {
	cfg         *config.Config
	classifier  *watering.Classifier
	now         int64
	concurrency int
}

// New creates a loader evaluating liveness at now.
func New(cfg *config.Config, classifier *watering.Classifier, now time.Time, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Loader{
		cfg:         cfg,
		classifier:  classifier,
		now:         now.Unix(),
		concurrency: concurrency,
	}
}

// PlantPath returns the plant-data file location for identity.
func (l *Loader) PlantPath(identity string) string {
	return l.sourcePath(identity, l.cfg.PlantData)
}

// VisitorsPath returns the visitor-log file location for identity.
func (l *Loader) VisitorsPath(identity string) string {
	return l.sourcePath(identity, l.cfg.Visitors)
}

func (l *Loader) sourcePath(identity, template string) string {
	rel := util.ExpandTemplate(template, map[string]string{"user": identity})
	return filepath.Join(l.cfg.UserDir, identity, rel)
}

// Load builds the record for one identity. It returns false when the
// identity is banned or its plant data is missing or invalid.
func (l *Loader) Load(identity string) (*model.PlantRecord, bool) {
	log := util.LogWith(util.Field{Key: "identity", Value: identity})
	if l.cfg.IsBanned(identity) {
		log.Debug("Skip banned identity")
		return nil, false
	}

	plantPath := l.PlantPath(identity)
	doc, err := parser.ReadPlantFile(plantPath)
	if err != nil {
		log.Debugf("Skip identity: %v", err)
		return nil, false
	}

	guests := watering.PastEvents(parser.ReadVisitorLog(l.VisitorsPath(identity)), l.now)
	effective := watering.EffectiveLastWatered(doc.LastWatered, guests, l.now)

	record := &model.PlantRecord{
		Identity:             identity,
		Owner:                doc.Owner,
		Description:          doc.Description,
		RecordedLastWatered:  doc.LastWatered,
		IsDeadFlag:           doc.IsDead,
		EffectiveLastWatered: effective,
		IsDead:               l.classifier.IsDead(effective, l.now, identity),
		GuestEvents:          len(guests),
	}

	log.Debug("Plant loaded",
		util.Field{Key: "guests", Value: len(guests)},
		util.Field{Key: "effective", Value: util.FormatTimestamp(effective)},
		util.Field{Key: "dead", Value: record.IsDead})
	return record, true
}

// LoadAll loads identities concurrently. The result keeps the order of
// identities and omits those that failed to load. Only cancellation of ctx
// produces an error.
func (l *Loader) LoadAll(ctx context.Context, identities []string) ([]*model.PlantRecord, error) {
	start := time.Now()
	slots := make([]*model.PlantRecord, len(identities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, identity := range identities {
		i, identity := i, identity
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if record, ok := l.Load(identity); ok {
				slots[i] = record
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading plants: %w", err)
	}

	records := make([]*model.PlantRecord, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			records = append(records, r)
		}
	}

	util.LogDebugf("Loaded %d of %d identities in %v, concurrency %d",
		len(records), len(identities), time.Since(start), l.concurrency)
	return records, nil
}
