package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("GET /v1/risk/questions", handler.ListRiskQuestions)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/auth/logout", RequireAuth(verifier, http.HandlerFunc(handler.Logout)))

	mux.Handle("GET /v1/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("PATCH /v1/profile", RequireAuth(verifier, http.HandlerFunc(handler.UpdateProfile)))
	mux.Handle("PATCH /v1/profile/preferences", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePreferences)))
	mux.Handle("POST /v1/profile/goals", RequireAuth(verifier, http.HandlerFunc(handler.AddInvestmentGoal)))

	mux.Handle("GET /v1/onboarding", RequireAuth(verifier, http.HandlerFunc(handler.GetOnboardingStatus)))
	mux.Handle("POST /v1/onboarding/resume", RequireAuth(verifier, http.HandlerFunc(handler.ResumeOnboarding)))
	mux.Handle("POST /v1/onboarding/next", RequireAuth(verifier, http.HandlerFunc(handler.OnboardingNext)))
	mux.Handle("POST /v1/onboarding/back", RequireAuth(verifier, http.HandlerFunc(handler.OnboardingBack)))

	mux.Handle("GET /v1/risk/position", RequireAuth(verifier, http.HandlerFunc(handler.GetRiskPosition)))
	mux.Handle("PUT /v1/risk/answers", RequireAuth(verifier, http.HandlerFunc(handler.AnswerRiskQuestion)))
	mux.Handle("POST /v1/risk/advance", RequireAuth(verifier, http.HandlerFunc(handler.AdvanceRiskSurvey)))
	mux.Handle("POST /v1/risk/retreat", RequireAuth(verifier, http.HandlerFunc(handler.RetreatRiskSurvey)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute-profiles", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeProfilesJob)))
}
