package cli

const defaultConfigFileContent = `# subnetear configuration file
version: 1
display:
  # ANSI-colored output.
  color: true
  # Max subnets to print, 0 for all. Exports always hold the full list.
  limit: 64
export:
  # Export directory. Empty means $HOME/Downloads.
  dir: ""
api:
  # HTTP API listen address for "subnetear serve".
  addr: 127.0.0.1:8686
server:
  prometheus:
    # Prometheus metrics endpoint, disabled when empty.
    addr: ""
  # Uncomment to tune logging, the section is zap configuration.
  # log:
  #   level: debug
  #   encoding: console
`
