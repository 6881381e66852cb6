package transition_status

// Request смена статуса одной брони
type Request struct {
	ID     int64
	Status string
	Token  string // Токен действия из X-Action-Token
}

// Response результат смены статуса
type Response struct {
	ID             int64
	Status         string
	PreviousStatus string
	Changed        bool // false, если бронь уже была в этом статусе
}

// BulkRequest массовое действие над бронями
type BulkRequest struct {
	IDs    []int64
	Action string // approve | decline | cancel | delete
	Token  string // bulk-токен на это действие
}

// BulkItem результат по одной брони
type BulkItem struct {
	ID      int64
	Status  string
	Changed bool
	Error   string
}

// BulkResponse результаты массового действия в порядке запроса
type BulkResponse struct {
	Action    string
	Items     []BulkItem
	Succeeded int
	Failed    int
}
