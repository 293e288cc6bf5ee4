package common

// DefaultUserName is assigned to accounts created without a display name.
const DefaultUserName = "Seeker"
