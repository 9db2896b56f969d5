package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"venuebook/internal/shared/config"
	"venuebook/internal/shared/constants"
	"venuebook/pkg/cache"

	"github.com/redis/go-redis/v9"
)

// cache_check calls the cached catalog endpoints of a running server twice and
// reports whether the second call was served from Redis.

type CacheCheckResult struct {
	Endpoint     string        `json:"endpoint"`
	CacheKey     string        `json:"cache_key"`
	CacheStatus  string        `json:"cache_status"`
	ResponseTime time.Duration `json:"response_time"`
	DataSize     int           `json:"data_size"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

type CacheCheckSuite struct {
	BaseURL string
	Redis   *redis.Client
	HTTP    *http.Client
	Results []CacheCheckResult
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	baseURL := os.Getenv("CACHE_CHECK_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port + cfg.GetAPIBasePath()
	}

	fmt.Println("🧪 Starting cache check...")
	fmt.Println("==========================")

	client, err := cache.NewRedisClient(ctx, cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	defer client.Close()
	fmt.Println("✅ Redis connection: OK")

	suite := &CacheCheckSuite{
		BaseURL: baseURL,
		Redis:   client,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}

	checks := []struct {
		name     string
		endpoint string
		key      string
	}{
		{"Venue list", "/venues", constants.CACHE_KEY_VENUES_ALL},
		{"Active packages", "/packages", constants.CACHE_KEY_PACKAGES_ACTIVE_ALL},
		{"Package filter options", "/packages/filter-options", constants.CACHE_KEY_PACKAGE_FILTER_OPTION},
	}

	for _, c := range checks {
		fmt.Printf("\n🔍 Checking: %s\n", c.name)

		// start cold so the first call has to populate the key
		if err := client.Del(ctx, c.key).Err(); err != nil {
			fmt.Printf("   ⚠️  could not clear %s: %v\n", c.key, err)
		}

		first := suite.check(ctx, c.endpoint, c.key)
		second := suite.check(ctx, c.endpoint, c.key)
		suite.Results = append(suite.Results, first, second)

		if first.Success && second.Success && first.ResponseTime > 0 {
			improvement := float64(first.ResponseTime-second.ResponseTime) / float64(first.ResponseTime) * 100
			fmt.Printf("   📈 Performance improvement: %.1f%% (%v -> %v)\n",
				improvement, first.ResponseTime, second.ResponseTime)
		}
	}

	suite.report()
	fmt.Println("\n🎉 Cache check complete!")
}

// check requests endpoint and labels the call HIT when key already existed beforehand
func (s *CacheCheckSuite) check(ctx context.Context, endpoint, key string) CacheCheckResult {
	result := CacheCheckResult{Endpoint: endpoint, CacheKey: key}

	existed, err := s.Redis.Exists(ctx, key).Result()
	if err != nil {
		result.CacheStatus = "ERROR"
		result.Error = err.Error()
		return result
	}
	result.CacheStatus = "MISS"
	if existed > 0 {
		result.CacheStatus = "HIT"
	}

	start := time.Now()
	resp, err := s.HTTP.Get(s.BaseURL + endpoint)
	if err != nil {
		result.CacheStatus = "ERROR"
		result.ResponseTime = time.Since(start)
		result.Error = err.Error()
		fmt.Printf("   ❌ %v\n", err)
		return result
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	result.ResponseTime = time.Since(start)
	result.DataSize = len(body)
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 400
	if !result.Success {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	statusIcon := "✅"
	if !result.Success {
		statusIcon = "❌"
	}
	cacheIcon := "💾"
	if result.CacheStatus == "HIT" {
		cacheIcon = "🔥"
	}
	fmt.Printf("   %s %s [%s] %v (%d bytes)\n", statusIcon, cacheIcon, result.CacheStatus, result.ResponseTime, result.DataSize)
	return result
}

func (s *CacheCheckSuite) report() {
	fmt.Println("\n📊 CACHE REPORT")
	fmt.Println("===============")

	var successful, hits, misses int
	var hitTime, missTime time.Duration
	for _, r := range s.Results {
		if r.Success {
			successful++
		}
		switch r.CacheStatus {
		case "HIT":
			hits++
			hitTime += r.ResponseTime
		case "MISS":
			misses++
			missTime += r.ResponseTime
		}
	}

	fmt.Printf("Total Checks: %d\n", len(s.Results))
	if len(s.Results) > 0 {
		fmt.Printf("Successful: %d (%.1f%%)\n", successful, float64(successful)/float64(len(s.Results))*100)
	}
	fmt.Printf("Cache Hits: %d\n", hits)
	fmt.Printf("Cache Misses: %d\n", misses)
	if hits > 0 {
		fmt.Printf("Average Cache Hit Time: %v\n", hitTime/time.Duration(hits))
	}
	if misses > 0 {
		fmt.Printf("Average Cache Miss Time: %v\n", missTime/time.Duration(misses))
	}

	out := os.Getenv("CACHE_CHECK_REPORT")
	if out == "" {
		return
	}
	data, err := json.MarshalIndent(map[string]interface{}{
		"summary": map[string]int{
			"total_checks": len(s.Results),
			"successful":   successful,
			"cache_hits":   hits,
			"cache_misses": misses,
		},
		"results": s.Results,
	}, "", "  ")
	if err != nil {
		log.Printf("failed to encode report: %v", err)
		return
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Printf("failed to write report: %v", err)
		return
	}
	fmt.Printf("\n💾 Detailed results saved to %s\n", out)
}
