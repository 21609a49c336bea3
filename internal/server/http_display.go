package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health                  - Health check")
	fmt.Println("  GET    /stats                   - Server statistics")
	if s.om.MetricsHandler() != nil {
		fmt.Printf("  GET    %-24s - Prometheus metrics\n", s.om.MetricsEndpoint())
	}
	fmt.Println("  POST   /evaluate                - Evaluate one answer")
	fmt.Println("  POST   /profile                 - Build a career profile from records")
	fmt.Println("  GET    /questions/fields        - List job fields")
	fmt.Println("  POST   /questions/sample        - Sample interview questions")
	fmt.Println("  POST   /sessions                - Start an interview session")
	fmt.Println("  GET    /sessions/{id}           - Show a session")
	fmt.Println("  DELETE /sessions/{id}           - Discard a session")
	fmt.Println("  POST   /sessions/{id}/answers   - Submit an answer")
	fmt.Println("  POST   /sessions/{id}/complete  - Finish a session and get its profile")
	if s.coach != nil {
		fmt.Println("  POST   /coach/summary           - Summarize a résumé")
		fmt.Println("  POST   /coach/recommendations   - Career recommendations")
		fmt.Println("  POST   /coach/chat              - Chat with the career coach")
	}
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to the API endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
