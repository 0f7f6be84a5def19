package model

import (
	"context"

	"sprachschule/internal/entity"
)

// SeedDefaultContent ensures the public landing page has something to show on
// a fresh installation. Existing content is never touched.
func SeedDefaultContent(ctx context.Context, repo Repository) error {
	if repo == nil {
		return nil
	}

	slides, err := repo.ListHeroSlides(ctx, false)
	if err != nil {
		return err
	}
	if len(slides) == 0 {
		defaults := []entity.DbHeroSlide{
			{Title: "Deutsch lernen, Zukunft gestalten", Subtitle: "German courses from A1 to C1, on site and online", IsActive: true},
			{Title: "آموزش زبان آلمانی", Subtitle: "Farsi-speaking teachers guide you to your language goals", IsActive: true},
		}
		for i := range defaults {
			if err := repo.CreateHeroSlide(ctx, &defaults[i]); err != nil {
				return err
			}
		}
	}

	features, err := repo.ListFeatureItems(ctx, false)
	if err != nil {
		return err
	}
	if len(features) == 0 {
		defaults := []entity.DbFeatureItem{
			{Title: "Small groups", Body: "Max. 12 learners per course", Icon: "users", IsActive: true},
			{Title: "Bilingual teachers", Body: "Classes taught in German and Farsi", Icon: "globe", IsActive: true},
			{Title: "Exam preparation", Body: "Goethe and telc oriented curriculum", Icon: "certificate", IsActive: true},
		}
		for i := range defaults {
			if err := repo.CreateFeatureItem(ctx, &defaults[i]); err != nil {
				return err
			}
		}
	}

	stats, err := repo.ListStatistics(ctx, false)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		defaults := []entity.DbStatistic{
			{Label: "Graduates", Value: "1200+", IsActive: true},
			{Label: "Courses per year", Value: "48", IsActive: true},
			{Label: "Pass rate", Value: "94%", IsActive: true},
		}
		for i := range defaults {
			if err := repo.CreateStatistic(ctx, &defaults[i]); err != nil {
				return err
			}
		}
	}

	return nil
}
