package catalog

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазина нет в каталоге
	ErrShopNotFound = errors.New("catalog: shop not found")

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrUnauthorized возвращается, когда каталог отклонил API ключ
	ErrUnauthorized = errors.New("catalog: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
