package services

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"foodgram/models"
	"foodgram/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// orphanMinAge - свежие файлы не трогаем, рецепт с ними может еще сохраняться
const orphanMinAge = time.Hour

// CleanupOrphanImages удаляет картинки рецептов, на которые не ссылается ни один рецепт
func CleanupOrphanImages(db *gorm.DB, mediaRoot string) (int, error) {
	dir := filepath.Join(mediaRoot, filepath.FromSlash(RecipeImagesDir))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read media dir: %w", err)
	}

	var used []string
	if err := db.Model(&models.Recipe{}).Pluck("image", &used).Error; err != nil {
		return 0, fmt.Errorf("load recipe images: %w", err)
	}
	inUse := make(map[string]bool, len(used))
	for _, p := range used {
		inUse[p] = true
	}

	removed := 0
	cutoff := time.Now().Add(-orphanMinAge)
	for _, entry := range entries {
		if entry.IsDir() || inUse[path.Join(RecipeImagesDir, entry.Name())] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			utils.LogError(err, "remove orphan image "+entry.Name())
			continue
		}
		removed++
	}
	return removed, nil
}

// StartMediaCleanupCron запускает чистку по расписанию в формате cron (5 полей)
func StartMediaCleanupCron(db *gorm.DB, mediaRoot, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		utils.Logger.Info().Msg("[MEDIA CRON] Начало чистки картинок рецептов")
		removed, err := CleanupOrphanImages(db, mediaRoot)
		if err != nil {
			utils.LogError(err, "[MEDIA CRON] cleanup failed")
			return
		}
		utils.Logger.Info().Int("removed", removed).Msg("[MEDIA CRON] Чистка завершена")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid media cleanup schedule %q: %w", schedule, err)
	}
	c.Start()
	utils.Logger.Info().Str("schedule", schedule).Msg("[MEDIA CRON] Планировщик запущен")
	return c, nil
}
