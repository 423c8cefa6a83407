package handler

import (
	"relaychat/internal/app/chat"
	"relaychat/internal/configs"
)

// AppDeps are the collaborators shared by every handler.
type AppDeps struct {
	Hub    *chat.Hub
	Config *configs.AppConfig
}
