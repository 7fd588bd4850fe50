package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/cache"
	"github.com/PennitApp/Pennit/internal/pkg/database"
)

const (
	CacheKeyWorksTotal = "statistics:works:total"
	CacheKeyWorksDaily = "statistics:works:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers      = "statistics:users:total"
	CacheExpiration    = 30 * time.Minute
)

// StatisticsData holds the platform stats shown on the home and admin pages
type StatisticsData struct {
	TodayWorks int
	TotalUsers int
	TotalWorks int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cache refresh interval has passed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has passed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next check to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	// Count published works
	var totalWorks int64
	if err := db.Model(&models.Work{}).Where("status = ?", models.WorkStatusPublished).Count(&totalWorks).Error; err != nil {
		log.Printf("Error counting total works: %v", err)
		return err
	}

	// Count today's published works
	var todayWorks int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.Work{}).
		Where("status = ? AND published_at BETWEEN ? AND ?", models.WorkStatusPublished, todayStart, todayEnd).
		Count(&todayWorks).Error; err != nil {
		log.Printf("Error counting today's works: %v", err)
		return err
	}

	// Count total users
	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	// Store values in cache
	if err := cache.Set(CacheKeyWorksTotal, strconv.FormatInt(totalWorks, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total works: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyWorksDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayWorks, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's works: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	return nil
}

// GetTotalWorks returns the number of published works from cache or database
func GetTotalWorks() int {
	val, err := cache.Get(CacheKeyWorksTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Work{}).Where("status = ?", models.WorkStatusPublished).Count(&count).Error; err != nil {
			log.Printf("Error counting total works: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyWorksTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total works: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayWorks returns the number of works published today from cache or database
func GetTodayWorks() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyWorksDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.Work{}).
			Where("status = ? AND published_at BETWEEN ? AND ?", models.WorkStatusPublished, todayStart, todayEnd).
			Count(&count).Error; err != nil {
			log.Printf("Error counting today's works: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's works: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of users from cache or database
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsers)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all statistics data as StatisticsData structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayWorks: GetTodayWorks(),
		TotalUsers: GetTotalUsers(),
		TotalWorks: GetTotalWorks(),
	}
}
