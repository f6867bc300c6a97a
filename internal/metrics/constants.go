package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "portal_http_requests_total"
	MetricNameHTTPRequestDuration  = "portal_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "portal_http_requests_in_flight"

	MetricNameEventsPublished    = "portal_events_published_total"
	MetricNameEventHandlerErrors = "portal_event_handler_errors_total"

	MetricNameItemsPurchased     = "portal_shop_items_purchased_total"
	MetricNameItemsEquipped      = "portal_shop_items_equipped_total"
	MetricNamePurchasesRejected  = "portal_shop_purchases_rejected_total"
	MetricNameCoinsSpent         = "portal_shop_coins_spent_total"
	MetricNameRotationsComputed  = "portal_shop_rotations_computed_total"
	MetricNameRotationCacheHits  = "portal_shop_rotation_cache_hits_total"
	MetricNameRewardsClaimed     = "portal_challenge_rewards_claimed_total"
	MetricNameCoinsAwarded       = "portal_challenge_coins_awarded_total"
	MetricNameGameSessionsEnded  = "portal_game_sessions_ended_total"
	MetricNameRolloversCompleted = "portal_rollovers_completed_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextEventsPublished    = "Total number of events published to the bus"
	HelpTextEventHandlerErrors = "Total number of event handler failures"

	HelpTextItemsPurchased    = "Total number of shop items purchased"
	HelpTextItemsEquipped     = "Total number of shop items equipped"
	HelpTextPurchasesRejected = "Total number of rejected purchase attempts"
	HelpTextCoinsSpent        = "Total coins spent in the shop"
	HelpTextRotationsComputed = "Total number of daily rotations computed"
	HelpTextRotationCacheHits = "Total number of rotation cache hits"
	HelpTextRewardsClaimed    = "Total number of challenge rewards claimed"
	HelpTextCoinsAwarded      = "Total coins credited from challenge rewards"
	HelpTextGameSessionsEnded  = "Total number of finalized game sessions"
	HelpTextRolloversCompleted = "Total number of completed daily rollovers"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCategory = "category"
	LabelReason   = "reason"
)

// HTTPLatencyBuckets covers the expected latency range of persistence-backed
// handlers.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
