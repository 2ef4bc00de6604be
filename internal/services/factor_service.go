package services

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"ecopath/server/internal/models"
	"ecopath/server/internal/utils"

	"gorm.io/gorm"
)

const FactorUpdateChannel = "factors:update" // Канал для Pub/Sub обновлений коэффициентов

// DefaultFactors - зашитые коэффициенты по умолчанию (кг CO2e на единицу).
// Нижний слой разрешения: строки из БД всегда перекрывают эти значения.
// Передаются в сервис явно при конструировании, а не через глобальное
// мутабельное состояние
var DefaultFactors = map[string]float64{
	"petrol":          2.31,
	"diesel":          2.68,
	"natural_gas":     2.02,
	"grid":            0.75,
	"ch4_capture_gwp": 27.0,
	"vam_gwp":         20.0,
}

// FactorService управляет таблицей коэффициентов выбросов: CRUD по БД
// плюс in-memory снапшот для разрешения кодов при агрегации
type FactorService struct {
	db        *gorm.DB
	redisUtil *utils.RedisClient
	defaults  map[string]float64

	mu             sync.RWMutex
	snapshot       map[string][]models.EmissionFactor // код -> строки, сортировка по EffectiveFrom по убыванию
	lastUpdate     time.Time
	updateInterval time.Duration
	stopPubSub     chan struct{}
}

// NewFactorService создает новый сервис коэффициентов.
// db и redisUtil могут быть nil: тогда разрешение работает только по дефолтам
func NewFactorService(db *gorm.DB, redisUtil *utils.RedisClient) *FactorService {
	return &FactorService{
		db:             db,
		redisUtil:      redisUtil,
		defaults:       DefaultFactors,
		snapshot:       make(map[string][]models.EmissionFactor),
		updateInterval: 5 * time.Minute,
		stopPubSub:     make(chan struct{}),
	}
}

// SetReloadInterval настраивает период fallback-перечитывания
func (fs *FactorService) SetReloadInterval(d time.Duration) {
	if d > 0 {
		fs.updateInterval = d
	}
}

// NormalizeCode нормализует код топлива/активности:
// trim, нижний регистр, алиас electricity -> grid
func NormalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "electricity" {
		code = "grid"
	}
	return code
}

// LoadFactors загружает коэффициенты из БД и обновляет in-memory снапшот.
// Потокобезопасно: сначала строится новая мапа, потом атомарно заменяется
func (fs *FactorService) LoadFactors() error {
	if fs.db == nil {
		return nil // Работаем только на дефолтах
	}

	// 1. Загружаем данные из БД (БЕЗ блокировки - это может быть долго)
	var factors []models.EmissionFactor
	if err := fs.db.Find(&factors).Error; err != nil {
		return err
	}

	// 2. Строим новый снапшот, старый не трогаем
	fs.rebuild(factors)

	log.Printf("✅ Таблица коэффициентов обновлена из БД: %d строк", len(factors))
	return nil
}

// rebuild строит снапшот из строк и атомарно заменяет текущий
func (fs *FactorService) rebuild(factors []models.EmissionFactor) {
	next := make(map[string][]models.EmissionFactor)
	for _, f := range factors {
		code := NormalizeCode(f.Code)
		next[code] = append(next[code], f)
	}
	for code := range next {
		rows := next[code]
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].EffectiveFrom.After(rows[j].EffectiveFrom)
		})
	}

	fs.mu.Lock()
	fs.snapshot = next
	fs.lastUpdate = time.Now()
	fs.mu.Unlock()
}

// Resolve возвращает коэффициент (кг CO2e на единицу) для кода.
// Ненайденный код молча даёт 0 - документированная политика best-effort
func (fs *FactorService) Resolve(code string) float64 {
	factor, _ := fs.ResolveDetailed(code)
	return factor
}

// ResolveDetailed возвращает коэффициент и флаг, удалось ли его разрешить.
// Выбирается строка с максимальным EffectiveFrom <= now среди строк с этим кодом;
// при отсутствии строк в БД используется дефолтное значение
func (fs *FactorService) ResolveDetailed(code string) (float64, bool) {
	code = NormalizeCode(code)
	if code == "" {
		return 0, false
	}
	now := time.Now().UTC()

	fs.mu.RLock()
	rows := fs.snapshot[code]
	fs.mu.RUnlock()

	// Строки отсортированы по EffectiveFrom по убыванию:
	// первая подходящая и есть самая свежая
	for _, row := range rows {
		if !row.EffectiveFrom.After(now) {
			return row.Factor, true
		}
	}

	if factor, ok := fs.defaults[code]; ok {
		return factor, true
	}
	return 0, false
}

// GetLastUpdate возвращает время последнего обновления снапшота
func (fs *FactorService) GetLastUpdate() time.Time {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.lastUpdate
}

// StartAutoReload запускает автоматическое обновление таблицы коэффициентов.
// Redis Pub/Sub для мгновенного обновления + таймер как fallback
func (fs *FactorService) StartAutoReload() {
	if fs.redisUtil != nil {
		go fs.startPubSubListener()
		log.Println("📡 Redis Pub/Sub для коэффициентов запущен (мгновенное обновление)")
	}

	go func() {
		ticker := time.NewTicker(fs.updateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := fs.LoadFactors(); err != nil {
					log.Printf("⚠️ Ошибка автообновления коэффициентов: %v", err)
				}
			case <-fs.stopPubSub:
				return
			}
		}
	}()
	log.Printf("🔄 Fallback автообновление коэффициентов запущено (каждые %v)", fs.updateInterval)
}

// startPubSubListener слушает Redis канал для мгновенного обновления
func (fs *FactorService) startPubSubListener() {
	if fs.redisUtil == nil {
		return
	}

	ch, closeFn := fs.redisUtil.Subscribe(FactorUpdateChannel)
	defer func() {
		if err := closeFn(); err != nil {
			log.Printf("⚠️ Ошибка закрытия Pub/Sub: %v", err)
		}
	}()

	log.Printf("👂 Слушаем канал Redis: %s", FactorUpdateChannel)

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				// Канал закрыт, пытаемся переподписаться
				log.Println("⚠️ Pub/Sub канал закрыт, переподписываемся...")
				ch, closeFn = fs.redisUtil.Subscribe(FactorUpdateChannel)
				continue
			}
			if msg != nil {
				log.Printf("🔔 Получено событие обновления коэффициентов из Redis: %s", msg.Payload)
				if err := fs.LoadFactors(); err != nil {
					log.Printf("⚠️ Ошибка обновления коэффициентов по Pub/Sub: %v", err)
				}
			}
		case <-fs.stopPubSub:
			log.Println("🛑 Остановка Pub/Sub listener для коэффициентов")
			return
		}
	}
}

// PublishUpdate публикует событие обновления коэффициентов в Redis
func (fs *FactorService) PublishUpdate() error {
	if fs.redisUtil == nil {
		return nil // Если Redis нет, обновились только локально
	}
	return fs.redisUtil.Publish(FactorUpdateChannel, "now")
}

// afterWrite перечитывает снапшот и уведомляет другие инстансы
func (fs *FactorService) afterWrite() {
	if err := fs.LoadFactors(); err != nil {
		log.Printf("⚠️ Ошибка перечитывания коэффициентов после записи: %v", err)
	}
	if err := fs.PublishUpdate(); err != nil {
		log.Printf("⚠️ Ошибка публикации события обновления коэффициентов: %v", err)
	}
}

// ListFactors возвращает все коэффициенты из БД
func (fs *FactorService) ListFactors() ([]models.EmissionFactor, error) {
	var factors []models.EmissionFactor
	if err := fs.db.Order("code, effective_from DESC").Find(&factors).Error; err != nil {
		return nil, err
	}
	return factors, nil
}

// GetFactorByID возвращает коэффициент по ID
func (fs *FactorService) GetFactorByID(id string) (*models.EmissionFactor, error) {
	var factor models.EmissionFactor
	if err := fs.db.First(&factor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &factor, nil
}

// CreateFactor создает новый коэффициент (код нормализуется при записи)
func (fs *FactorService) CreateFactor(factor *models.EmissionFactor) error {
	factor.Code = NormalizeCode(factor.Code)
	factor.Unit = strings.TrimSpace(factor.Unit)
	if err := fs.db.Create(factor).Error; err != nil {
		return fmt.Errorf("ошибка создания коэффициента: %w", err)
	}
	fs.afterWrite()
	return nil
}

// UpdateFactor обновляет существующий коэффициент
func (fs *FactorService) UpdateFactor(id string, upd *models.EmissionFactor) (*models.EmissionFactor, error) {
	var factor models.EmissionFactor
	if err := fs.db.First(&factor, "id = ?", id).Error; err != nil {
		return nil, err
	}

	factor.Category = upd.Category
	factor.Code = NormalizeCode(upd.Code)
	factor.Unit = strings.TrimSpace(upd.Unit)
	factor.Factor = upd.Factor
	if !upd.EffectiveFrom.IsZero() {
		factor.EffectiveFrom = upd.EffectiveFrom
	}
	factor.EffectiveTo = upd.EffectiveTo

	if err := fs.db.Save(&factor).Error; err != nil {
		return nil, fmt.Errorf("ошибка обновления коэффициента: %w", err)
	}
	fs.afterWrite()
	return &factor, nil
}

// DeleteFactor удаляет коэффициент по ID
func (fs *FactorService) DeleteFactor(id string) error {
	res := fs.db.Delete(&models.EmissionFactor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	fs.afterWrite()
	return nil
}
