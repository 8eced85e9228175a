package http

import (
	"context"

	"gitlab.apk-group.net/siem/backend/qualys-client/api/service"
	"gitlab.apk-group.net/siem/backend/qualys-client/app"
)

// qualys service transient instance handler
func qualysServiceGetter(appContainer app.AppContainer) ServiceGetter[*service.QualysService] {
	return func(ctx context.Context) *service.QualysService {
		return service.NewQualysService(appContainer.QualysService(ctx))
	}
}
