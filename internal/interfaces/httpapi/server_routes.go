package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("/healthz", AllowMethods([]string{http.MethodGet}, http.HandlerFunc(handler.Healthz)))
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("/v1/events/current", AllowMethods([]string{http.MethodGet}, http.HandlerFunc(handler.GetCurrentEvent)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("/v1/picks", AllowMethods([]string{http.MethodPost}, RequireAuth(verifier, http.HandlerFunc(handler.SubmitPicks))))
	mux.Handle("/v1/picks/me/status", AllowMethods([]string{http.MethodGet}, RequireAuth(verifier, http.HandlerFunc(handler.GetMyPickStatus))))
	mux.Handle("/v1/leaderboard", AllowMethods([]string{http.MethodGet}, RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard))))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("/v1/internal/scores/rescore", AllowMethods([]string{http.MethodPost}, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RescoreCompletedFights))))
	mux.Handle("/v1/internal/fights/{fightID}/result", AllowMethods([]string{http.MethodPut}, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecordFightResult))))
}
