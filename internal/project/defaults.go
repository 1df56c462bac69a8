package project

// DefaultTemplate is written to wrangler-config.toml by Init. Optional
// bindings are commented out; their ids use placeholders so secrets stay in
// the environment.
const DefaultTemplate = `name = "my-worker"
main = "src/index.ts"
compatibility_date = "2024-11-04"

compatibility_flags = [ "nodejs_compat" ]

# [vars]
# MY_VARS = ""

# [[kv_namespaces]]
# binding = "MY_KV_STORE"
# d = "__MY_KV_STORE_ID__"

# [[r2_buckets]]
# binding = "MY_BUCKET"
# bucket_name = "__MY_KV_BUCKET_NAME__"

# [[d1_databases]]
# binding = "DB"
# database_name = "__MY_DATABASE_NAME__"
# database_id = "__MY_DATABASE_ID__"

# [ai]
# binding = "AI"

# [observability]
# enabled = true
# head_sampling_rate = 1`

// DefaultEnv is written to .env by Init.
const DefaultEnv = `KV_NAMESPACE_ID=your-kv-id-here`
