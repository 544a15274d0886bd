// Package store 以單一 JSON 檔保存食譜，最新的在最前面。
//
// 每次寫入都是整份文件替換（寫暫存檔後 rename），讀者不會看到半寫入的檔案。
// Add/Delete 的讀改寫只在同一個行程內以 mutex 串行化；多個行程同時
// 操作同一個檔案時最後寫入者勝出，期間的更新可能遺失。
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"

	"go.uber.org/zap"
)

// Store JSON 檔食譜儲存
type Store struct {
	path    string
	mu      sync.Mutex
	metrics *metrics.Metrics
}

// Indexed 帶有原始位置的食譜，供依位置刪除
type Indexed struct {
	Index  int           `json:"index"`
	Record recipe.Record `json:"record"`
}

// New 創建儲存，path 的目錄不存在時建立
func New(path string, m *metrics.Metrics) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path, metrics: m}, nil
}

// Path 文件路徑
func (s *Store) Path() string {
	return s.path
}

// Load 讀取全部食譜；檔案不存在時回傳空切片
func (s *Store) Load() ([]recipe.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	s.metrics.ObserveStore("load", err)
	return records, err
}

func (s *Store) load() ([]recipe.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []recipe.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var records []recipe.Record
	if err := common.ParseJSONBytes(data, &records); err != nil {
		common.LogError("食譜文件損毀",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil, common.NewParseError(s.path, err)
	}
	if records == nil {
		records = []recipe.Record{}
	}
	return records, nil
}

// Save 以給定順序覆寫整份文件
func (s *Store) Save(records []recipe.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.save(records)
	s.metrics.ObserveStore("save", err)
	return err
}

func (s *Store) save(records []recipe.Record) error {
	if records == nil {
		records = []recipe.Record{}
	}
	data, err := common.MarshalIndent(records)
	if err != nil {
		return fmt.Errorf("failed to encode recipes: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功後為 no-op

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Add 將食譜插入最前面
func (s *Store) Add(r recipe.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.add(r)
	s.metrics.ObserveStore("add", err)
	return err
}

func (s *Store) add(r recipe.Record) error {
	if strings.TrimSpace(r.Text) == "" {
		return common.NewValidationError("recipe text must not be empty")
	}
	records, err := s.load()
	if err != nil {
		return err
	}
	records = append([]recipe.Record{r}, records...)
	if err := s.save(records); err != nil {
		return err
	}
	common.LogInfo("食譜已儲存",
		zap.String("title", r.Title()),
		zap.Int("total", len(records)),
	)
	return nil
}

// Delete 移除指定位置的食譜；超出範圍時不做任何事
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.delete(index)
	s.metrics.ObserveStore("delete", err)
	return err
}

func (s *Store) delete(index int) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		common.LogDebug("刪除位置超出範圍，略過",
			zap.Int("index", index),
			zap.Int("total", len(records)),
		)
		return nil
	}
	records = append(records[:index], records[index+1:]...)
	return s.save(records)
}

// Clear 刪除整份文件，回傳原本是否存在
func (s *Store) Clear() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.metrics.ObserveStore("clear", nil)
		return false, nil
	}
	s.metrics.ObserveStore("clear", err)
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	common.LogInfo("已清除所有食譜", zap.String("path", s.path))
	return true, nil
}

// Get 讀取單筆食譜
func (s *Store) Get(index int) (recipe.Record, error) {
	records, err := s.Load()
	if err != nil {
		return recipe.Record{}, err
	}
	if index < 0 || index >= len(records) {
		return recipe.Record{}, common.ErrNotFound
	}
	return records[index], nil
}

// Search 以不分大小寫的子字串比對文字、菜系與飲食偏好；空查詢回傳全部。
// 文字與菜系直接相接，中間沒有空白
func (s *Store) Search(query string) ([]Indexed, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]Indexed, 0, len(records))
	for i, r := range records {
		haystack := strings.ToLower(r.Text + r.Cuisine + " " + r.Diet)
		if q == "" || strings.Contains(haystack, q) {
			results = append(results, Indexed{Index: i, Record: r})
		}
	}
	return results, nil
}
