package types

type contextKey string

// ClientAppKey — ключ контекста, под которым root-команда передает
// собранное клиентское приложение подкомандам.
const ClientAppKey contextKey = "clientApp"
