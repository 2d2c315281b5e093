package models

import "time"

// Property представляет объект недвижимости в каталоге лидов.
// JSON-ключи являются контрактом: по ним классификатор масок
// определяет тип записи в исходящем ответе.
type Property struct {
	ID          int       `json:"id"`           // Идентификатор записи
	StreetNum   string    `json:"street_num"`   // Номер дома
	StreetName  string    `json:"street_name"`  // Название улицы
	City        string    `json:"city"`         // Город
	State       string    `json:"state"`        // Штат
	Zip         string    `json:"zip"`          // Почтовый индекс
	Price       int64     `json:"price"`        // Цена, целые доллары
	Beds        int       `json:"beds"`         // Количество спален
	Baths       int       `json:"baths"`        // Количество ванных
	Sqft        int       `json:"sqft"`         // Площадь, кв. футы
	YearBuilt   int       `json:"year_built"`   // Год постройки
	ListingDate time.Time `json:"listing_date"` // Дата выставления
	Description string    `json:"description"`  // Описание объекта
	EstValue    int64     `json:"est_value"`    // Оценочная стоимость
}

// Auction представляет аукционную запись по объекту недвижимости.
type Auction struct {
	ID          int       `json:"id"`           // Идентификатор записи
	AuctionID   string    `json:"auction_id"`   // Номер аукциона
	PropertyID  int       `json:"property_id"`  // Связанный объект
	AuctionDate time.Time `json:"auction_date"` // Дата проведения
	OpeningBid  int64     `json:"opening_bid"`  // Стартовая ставка
	Courthouse  string    `json:"courthouse"`   // Место проведения
	TrusteeName string    `json:"trustee_name"` // Доверительный управляющий
	CaseNumber  string    `json:"case_number"`  // Номер дела
}

// Owner представляет собственника объекта недвижимости.
type Owner struct {
	ID             int    `json:"id"`              // Идентификатор записи
	PropertyID     int    `json:"property_id"`     // Связанный объект
	FirstName      string `json:"first_name"`      // Имя
	LastName       string `json:"last_name"`       // Фамилия
	MailingAddress string `json:"mailing_address"` // Почтовый адрес
	Phone          string `json:"phone"`           // Телефон
	Email          string `json:"email"`           // Электронная почта
	OwnerType      string `json:"owner_type"`      // Тип: individual или entity
	Notes          string `json:"notes"`           // Заметки менеджера
}

// Loan представляет запись о займе, обременяющем объект.
type Loan struct {
	ID              int       `json:"id"`               // Идентификатор записи
	PropertyID      int       `json:"property_id"`      // Связанный объект
	LenderName      string    `json:"lender_name"`      // Кредитор
	LoanAmount      int64     `json:"loan_amount"`      // Сумма займа
	InterestRate    float64   `json:"interest_rate"`    // Процентная ставка
	OriginationDate time.Time `json:"origination_date"` // Дата выдачи
	LoanType        string    `json:"loan_type"`        // Тип займа
	Position        int       `json:"position"`         // Очерёдность залога
}
