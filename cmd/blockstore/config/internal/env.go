package internal

// EnvPrefix is a prefix of ENV variables related
// to block storage server configuration.
const EnvPrefix = "blockstore"

// EnvSeparator is a section separator in ENV variables.
const EnvSeparator = "_"
