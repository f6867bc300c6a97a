package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidDateParam  = "Invalid date parameter, expected YYYY-MM-DD"

	// Shop operation error messages
	ErrMsgGetRotationFailed     = "Failed to get shop rotation"
	ErrMsgPurchaseFailed        = "Failed to purchase item"
	ErrMsgEquipFailed           = "Failed to equip item"
	ErrMsgUnequipFailed         = "Failed to unequip item"
	ErrMsgGetEntitlementsFailed = "Failed to get owned items"

	// Wallet operation error messages
	ErrMsgGetWalletFailed    = "Failed to get wallet"
	ErrMsgCreditWalletFailed = "Failed to credit wallet"

	// Profile operation error messages
	ErrMsgGetProfileFailed     = "Failed to get profile"
	ErrMsgUpdateProfileFailed  = "Failed to update profile"
	ErrMsgGetSettingsFailed    = "Failed to get settings"
	ErrMsgUpdateSettingsFailed = "Failed to update settings"

	// Challenge operation error messages
	ErrMsgGetChallengesFailed = "Failed to get challenges"
	ErrMsgClaimRewardFailed   = "Failed to claim reward"

	// Game operation error messages
	ErrMsgGetGamesFailed       = "Failed to get game records"
	ErrMsgToggleFavoriteFailed = "Failed to toggle favorite"
	ErrMsgStartSessionFailed   = "Failed to start session"
	ErrMsgEndSessionFailed     = "Failed to end session"
)

// Success messages for API responses
const (
	MsgItemPurchasedSuccess = "Item purchased successfully"
	MsgItemEquippedSuccess  = "Item equipped successfully"
	MsgItemUnequipped       = "Item unequipped"
	MsgRewardClaimed        = "Reward claimed successfully"
	MsgProgressRecorded     = "Progress recorded"
	MsgWalletCredited       = "Wallet credited successfully"
)
