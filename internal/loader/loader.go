package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"babajina/internal/model"
	"babajina/internal/parser"
)

// Paths 三个数据源文件路径
type Paths struct {
	Sales     string
	Suppliers string
	Rentals   string
}

// DatasetStatus 单数据集加载状态（供 /api/status 与运维诊断）
type DatasetStatus struct {
	Kind    model.DatasetKind   `json:"kind"`
	Path    string              `json:"path"`
	Missing bool                `json:"missing"`         // 源文件不存在
	Error   string              `json:"error,omitempty"` // 打开/读取失败原因
	Parse   *parser.ParseResult `json:"parse,omitempty"`
}

// Available 数据集是否可用于聚合
func (s *DatasetStatus) Available() bool {
	return !s.Missing && s.Error == "" && s.Parse != nil && s.Parse.Status == parser.StatusOK
}

// Snapshot 一次加载的不可变数据快照
type Snapshot struct {
	Sales     []model.SalesRecord   `json:"sales"`
	Suppliers []model.SupplierOrder `json:"suppliers"`
	Rentals   []model.Rental        `json:"rentals"`
	Statuses  []DatasetStatus       `json:"statuses"`
	LoadedAt  time.Time             `json:"loadedAt"`
}

// Status 按数据集类型取状态
func (s *Snapshot) Status(kind model.DatasetKind) *DatasetStatus {
	for i := range s.Statuses {
		if s.Statuses[i].Kind == kind {
			return &s.Statuses[i]
		}
	}
	return nil
}

// cacheEntry 单文件解析缓存（内容哈希 + 修改时间双重失效）
type cacheEntry struct {
	hash    string
	modTime time.Time
	records interface{}
	status  DatasetStatus
}

// Loader 数据加载器，带按文件的读穿缓存
// 互斥锁兼作缓存填充屏障：并发未命中时只解析一次
type Loader struct {
	mu    sync.Mutex
	cache map[string]*cacheEntry
}

// New 创建加载器
func New() *Loader {
	return &Loader{
		cache: make(map[string]*cacheEntry),
	}
}

// Invalidate 清空缓存，下次加载强制重读文件
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*cacheEntry)
}

// LoadAll 加载三个数据集并组装快照
// 数据集级失败（文件缺失、表头不可解析）记入状态，不中断其余数据集
func (l *Loader) LoadAll(paths Paths) *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := &Snapshot{LoadedAt: time.Now()}

	salesRecords, salesStatus := l.loadDataset(model.DatasetSales, paths.Sales)
	if records, ok := salesRecords.([]model.SalesRecord); ok {
		snapshot.Sales = records
	}
	snapshot.Statuses = append(snapshot.Statuses, salesStatus)

	supplierRecords, supplierStatus := l.loadDataset(model.DatasetSuppliers, paths.Suppliers)
	if records, ok := supplierRecords.([]model.SupplierOrder); ok {
		snapshot.Suppliers = records
	}
	snapshot.Statuses = append(snapshot.Statuses, supplierStatus)

	rentalRecords, rentalStatus := l.loadDataset(model.DatasetRentals, paths.Rentals)
	if records, ok := rentalRecords.([]model.Rental); ok {
		snapshot.Rentals = records
	}
	snapshot.Statuses = append(snapshot.Statuses, rentalStatus)

	return snapshot
}

// loadDataset 加载单个数据集，命中缓存时跳过解析
func (l *Loader) loadDataset(kind model.DatasetKind, path string) (interface{}, DatasetStatus) {
	status := DatasetStatus{Kind: kind, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Missing = true
		} else {
			status.Error = err.Error()
		}
		delete(l.cache, path)
		return nil, status
	}

	// 修改时间未变即命中；变了再比对内容哈希，触碰但未改写的文件仍然命中
	if entry, ok := l.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.records, entry.status
	}

	data, err := os.ReadFile(path)
	if err != nil {
		status.Error = err.Error()
		delete(l.cache, path)
		return nil, status
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if entry, ok := l.cache[path]; ok && entry.hash == hash {
		entry.modTime = info.ModTime()
		return entry.records, entry.status
	}

	records, status := parseDataset(kind, path, data)
	l.cache[path] = &cacheEntry{
		hash:    hash,
		modTime: info.ModTime(),
		records: records,
		status:  status,
	}
	return records, status
}

// parseDataset 解析单个工作簿
func parseDataset(kind model.DatasetKind, path string, data []byte) (interface{}, DatasetStatus) {
	status := DatasetStatus{Kind: kind, Path: path}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		status.Error = fmt.Sprintf("failed to open workbook: %v", err)
		return nil, status
	}
	defer file.Close()

	switch kind {
	case model.DatasetSales:
		records, result, err := parser.NewSalesParser(file).Parse("")
		if err != nil {
			status.Error = err.Error()
			return nil, status
		}
		status.Parse = result
		return records, status
	case model.DatasetSuppliers:
		records, result, err := parser.NewSupplierParser(file).Parse("")
		if err != nil {
			status.Error = err.Error()
			return nil, status
		}
		status.Parse = result
		return records, status
	case model.DatasetRentals:
		records, result, err := parser.NewRentalParser(file).Parse("")
		if err != nil {
			status.Error = err.Error()
			return nil, status
		}
		status.Parse = result
		return records, status
	}

	status.Error = fmt.Sprintf("unknown dataset kind: %s", kind)
	return nil, status
}
