package restapi

import "html/template"

const pageTemplateName = "dashboard"

var pageTemplate = template.Must(template.New(pageTemplateName).Parse(pageHTML))

// pageHTML is the dashboard page. Chart data is written into the script blocks
// as JSON by html/template.
const pageHTML = `{{define "addr"}}{{if .URL}}<a href="{{.URL}}" target="_blank" rel="noopener" class="font-monospace">{{.Display}}</a>{{else}}<span class="font-monospace">{{.Display}}</span>{{end}}{{end}}
{{define "row"}}<tr><th class="text-muted fw-normal">{{.}}</th>{{end}}
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    {{if gt .AutoRefreshSeconds 0}}<meta http-equiv="refresh" content="{{.AutoRefreshSeconds}};url={{.AutoRefreshURL}}">{{end}}
    <title>SuperVault Dashboard</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/flatly/bootstrap.min.css">
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.2/css/all.min.css">
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.3/dist/chart.umd.min.js"></script>
    <style>
        .status-dot { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 6px; }
        .card { margin-bottom: 1rem; }
        .chart-box { position: relative; height: 260px; }
    </style>
</head>
<body>
<nav class="navbar navbar-dark bg-primary mb-4">
    <div class="container-fluid">
        <span class="navbar-brand"><i class="fas fa-vault me-2"></i>SuperVault Dashboard</span>
        <span class="navbar-text small">{{if .LatestBlock}}Latest block {{.LatestBlock}} &middot; {{end}}{{.GeneratedAt}}</span>
    </div>
</nav>

<div class="container-fluid">
    <form method="get" action="/" class="row g-3 align-items-end mb-3">
        <input type="hidden" name="tab" value="{{.Tab}}">
        <div class="col-md-3">
            <label class="form-label" for="chain">Chain</label>
            <select class="form-select" id="chain" name="chain" onchange="this.form.vault.value='';this.form.submit()">
                {{range .Chains}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
            </select>
        </div>
        <div class="col-md-4">
            <label class="form-label" for="vault">Vault</label>
            <select class="form-select" id="vault" name="vault" onchange="this.form.submit()">
                {{range .Vaults}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
            </select>
        </div>
        <div class="col-md-2">
            <label class="form-label" for="block">Block number</label>
            <input class="form-control" type="number" min="0" id="block" name="block" placeholder="latest" value="{{.BlockParam}}">
        </div>
        <div class="col-md-3">
            <button type="submit" class="btn btn-primary"><i class="fas fa-search me-1"></i>Load</button>
            <button type="submit" class="btn btn-outline-secondary" name="refresh" value="1"><i class="fas fa-sync-alt me-1"></i>Refresh</button>
        </div>
    </form>

    <ul class="nav nav-tabs mb-3">
        {{range .Tabs}}<li class="nav-item"><a class="nav-link{{if .Active}} active{{end}}" href="/?chain={{$.ChainID}}&vault={{$.Vault}}&block={{$.BlockParam}}&tab={{.ID}}">{{.Label}}</a></li>{{end}}
    </ul>

    {{with .Error}}
    <div class="card border-danger">
        <div class="card-header text-danger"><i class="fas fa-exclamation-circle me-2"></i>{{.Title}}</div>
        <div class="card-body">
            <p>{{.Message}}</p>
            <p class="text-muted mb-0">{{.Hint}}</p>
        </div>
    </div>
    {{end}}

    {{with .Placeholder}}
    <div class="card">
        <div class="card-body text-center text-muted py-5">
            <h4>{{.Title}}</h4>
            <p class="mb-0">{{.Message}}</p>
        </div>
    </div>
    {{end}}

    {{with .Cards}}
    <div class="row">
        <div class="col-lg-6">
            {{with .Details}}
            <div class="card">
                <div class="card-header"><span class="status-dot" style="background-color: {{.StatusColor}}"></span>{{.Name}} ({{.Symbol}}) <span class="badge bg-light text-dark ms-2">{{.StatusText}}</span></div>
                <div class="card-body">
                    <table class="table table-sm mb-0">
                        {{template "row" "Vault"}}<td>{{template "addr" .Vault}}</td></tr>
                        {{template "row" "Strategy"}}<td>{{template "addr" .Strategy}}</td></tr>
                        {{template "row" "Escrow"}}<td>{{template "addr" .Escrow}}</td></tr>
                        {{template "row" "Main manager"}}<td>{{template "addr" .MainManager}}</td></tr>
                        {{template "row" "Asset"}}<td>{{.AssetSymbol}} {{template "addr" .Asset}}</td></tr>
                        {{template "row" "Total assets"}}<td>{{.TotalAssets}}</td></tr>
                        {{template "row" "Total supply"}}<td>{{.TotalSupply}}</td></tr>
                        {{template "row" "Escrowed assets"}}<td>{{.EscrowedAssets}}</td></tr>
                        {{template "row" "Fetched"}}<td>{{.Fetched}}{{if .BlockNumber}} &middot; block {{.BlockNumber}}{{end}}</td></tr>
                    </table>
                </div>
            </div>
            {{end}}

            {{with .PPS}}
            <div class="card">
                <div class="card-header"><i class="{{.Health.Icon}} me-2" style="color: {{.Health.Color}}"></i>Price per share <span class="badge ms-2" style="background-color: {{.Health.Color}}">{{.Health.Status}}</span></div>
                <div class="card-body">
                    <table class="table table-sm">
                        {{template "row" "Current PPS"}}<td>{{.CurrentPPS}}</td></tr>
                        {{template "row" "Calculated PPS"}}<td>{{.CalculatedPPS}}</td></tr>
                        {{template "row" "Delta"}}<td class="{{.DeltaClass}}">{{.DeltaText}}{{if .DeltaAlert}} <i class="fas fa-exclamation-triangle"></i>{{end}}</td></tr>
                        {{template "row" "Min update interval"}}<td>{{.MinUpdateInterval}}</td></tr>
                        {{template "row" "Max staleness"}}<td>{{.MaxStaleness}}</td></tr>
                        {{template "row" "Last update"}}<td>{{.LastUpdated}}</td></tr>
                        {{template "row" "Expires"}}<td>{{.Expires}}</td></tr>
                    </table>
                    <div class="chart-box"><canvas id="pps-chart"></canvas></div>
                </div>
            </div>
            {{end}}

            {{with .Fees}}
            <div class="card">
                <div class="card-header"><i class="fas fa-percent me-2"></i>Fees</div>
                <div class="card-body">
                    <table class="table table-sm mb-0">
                        {{template "row" "Performance fee"}}<td>{{.Performance}}</td></tr>
                        {{template "row" "Management fee"}}<td>{{.Management}}</td></tr>
                        {{template "row" "High water mark PPS"}}<td>{{.HWMPPS}}</td></tr>
                        {{template "row" "Unrealized profit"}}<td>{{.UnrealizedProfit}}</td></tr>
                        {{template "row" "Recipient"}}<td>{{template "addr" .Recipient}}</td></tr>
                    </table>
                </div>
            </div>
            {{end}}
        </div>

        <div class="col-lg-6">
            {{with .TVL}}
            <div class="card">
                <div class="card-header"><i class="fas fa-chart-pie me-2"></i>Allocations</div>
                <div class="card-body">
                    {{if .Empty}}
                    <p class="text-muted mb-0">{{.Message}}</p>
                    {{else}}
                    <p>Total <strong>{{.Total}}</strong> &middot; {{.SourceCount}} sources ({{.ActiveCount}} active, {{.IdleCount}} idle, {{.InactiveCount}} inactive)</p>
                    <div class="chart-box mb-3"><canvas id="tvl-chart"></canvas></div>
                    <table class="table table-sm">
                        <thead><tr><th>Source</th><th>Address</th><th>Oracle</th><th class="text-end">Assets</th><th class="text-end">Share</th><th></th></tr></thead>
                        <tbody>
                        {{range .Rows}}
                        <tr>
                            <td>{{.Name}}</td>
                            <td>{{template "addr" .Address}}</td>
                            <td>{{template "addr" .Oracle}}</td>
                            <td class="text-end">{{.Assets}}</td>
                            <td class="text-end">{{.Percentage}}</td>
                            <td><span class="badge bg-{{.Badge.Color}}">{{.Badge.Text}}</span></td>
                        </tr>
                        {{end}}
                        </tbody>
                    </table>
                    {{end}}
                </div>
            </div>
            {{end}}

            {{with .Upkeep}}
            <div class="card">
                <div class="card-header"><i class="fas fa-gas-pump me-2"></i>Upkeep</div>
                <div class="card-body">
                    <span class="fs-5">{{.Balance}}</span>
                    <span class="badge bg-{{.Class}} ms-2">{{.Status}}</span>
                </div>
            </div>
            {{end}}

            {{with .Managers}}
            <div class="card">
                <div class="card-header"><i class="fas fa-user-shield me-2"></i>Managers</div>
                <div class="card-body">
                    <p>Main {{template "addr" .Main}}</p>
                    {{if .Secondary}}<ul class="mb-0">{{range .Secondary}}<li>{{template "addr" .}}</li>{{end}}</ul>{{else}}<p class="text-muted mb-0">No secondary managers</p>{{end}}
                </div>
            </div>
            {{end}}

            {{with .Config}}
            <div class="card">
                <div class="card-header"><i class="fas fa-sliders-h me-2"></i>Configuration</div>
                <div class="card-body">
                    <table class="table table-sm mb-0">
                        {{template "row" "Deviation threshold"}}<td>{{.DeviationThreshold}}</td></tr>
                        {{template "row" "PPS expiration"}}<td>{{.PPSExpiration}}</td></tr>
                    </table>
                </div>
            </div>
            {{end}}
        </div>
    </div>

    <script>
        const ppsPoints = {{.PPS.Chart}};
        new Chart(document.getElementById("pps-chart"), {
            type: "bar",
            data: {
                labels: ppsPoints.map(p => p.series),
                datasets: [{ label: "PPS", data: ppsPoints.map(p => p.value), backgroundColor: ["#2c3e50", "#18bc9c"] }]
            },
            options: { maintainAspectRatio: false, plugins: { legend: { display: false } } }
        });
        const tvlSlices = {{.TVL.Pie}};
        if (tvlSlices && tvlSlices.length) {
            new Chart(document.getElementById("tvl-chart"), {
                type: "pie",
                data: { labels: tvlSlices.map(s => s.label), datasets: [{ data: tvlSlices.map(s => s.value) }] },
                options: { maintainAspectRatio: false }
            });
        }
    </script>
    {{end}}
</div>
</body>
</html>
`
