package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	CatalogServer
}

func NewServer(
	catalogServer CatalogServer,
) Server {
	return Server{
		CatalogServer: catalogServer,
	}
}
