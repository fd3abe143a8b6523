package materialize_slots

// Response отчет о прогоне материализации слотов
type Response struct {
	From          string `json:"from"` // Первая дата горизонта
	To            string `json:"to"`   // Последняя дата горизонта
	DaysProcessed int    `json:"daysProcessed"`
	SlotsCreated  int    `json:"slotsCreated"` // Новые слоты
	SlotsSkipped  int    `json:"slotsSkipped"` // Уже существовавшие слоты
}
