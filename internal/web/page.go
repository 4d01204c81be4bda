package web

// Single-page dashboard with a card per analyzed asset, fed by the SSE stream.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Market Dashboard</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Press+Start+2P&family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
      --line:rgba(0,0,0,0.12);
      --up:#0a7d33;
      --down:#c0392b;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono', monospace;
    }
    h1 {
      font-family:'Press Start 2P', monospace;
      font-size:1rem;
      letter-spacing:0.1em;
      margin:0 0 0.4rem;
    }
    #status { color:var(--ink-soft); font-size:0.75rem; margin-bottom:1.6rem; }
    #cards {
      display:grid;
      grid-template-columns:repeat(auto-fill, minmax(300px, 1fr));
      gap:1rem;
    }
    .card {
      background:var(--panel);
      border:1px solid var(--line);
      padding:1rem 1.2rem;
    }
    .card h2 { margin:0 0 0.6rem; font-size:1rem; }
    .card.degraded { opacity:0.55; }
    .price { font-size:1.5rem; font-weight:700; }
    .row { display:flex; justify-content:space-between; margin:0.25rem 0; font-size:0.8rem; }
    .row .label { color:var(--ink-mid); }
    .action {
      display:inline-block;
      margin-top:0.6rem;
      padding:0.2rem 0.6rem;
      border:1px solid var(--ink);
      font-size:0.75rem;
      text-transform:uppercase;
      letter-spacing:0.08em;
    }
    .action.buy, .action.accumulate { color:var(--up); border-color:var(--up); }
    .action.sell, .action.reduce { color:var(--down); border-color:var(--down); }
    .warnings { margin:0.6rem 0 0; padding-left:1rem; font-size:0.7rem; color:var(--ink-mid); }
    .stamp { margin-top:0.6rem; font-size:0.65rem; color:var(--ink-soft); }
    button {
      margin-top:0.6rem;
      font-family:inherit;
      font-size:0.7rem;
      background:none;
      border:1px solid var(--line);
      padding:0.25rem 0.6rem;
      cursor:pointer;
    }
    button:hover { border-color:var(--ink); }
  </style>
</head>
<body>
  <h1>MARKET DASHBOARD</h1>
  <div id="status">connecting&hellip;</div>
  <div id="cards"></div>
  <script>
    const cards = document.getElementById('cards');
    const status = document.getElementById('status');
    const reports = new Map();

    function assetKey(report) {
      return report.asset.symbol + '_' + report.asset.quote;
    }

    function render() {
      cards.innerHTML = '';
      for (const [key, report] of [...reports.entries()].sort()) {
        const card = document.createElement('div');
        card.className = 'card' + (report.degraded ? ' degraded' : '');

        const phase = report.condition.phase;
        const conf = report.condition.confidence.toFixed(0);
        const rsi = report.signals.momentum.rsi.toFixed(1);
        const risk = report.risk.overall.toFixed(0);
        const action = report.strategy.action;
        const warnings = (report.risk.warnings || [])
          .map(w => '<li>' + w + '</li>').join('');

        card.innerHTML =
          '<h2>' + key + (report.degraded ? ' &#9888;' : '') + '</h2>' +
          '<div class="price">' + report.current_price.toLocaleString() + '</div>' +
          '<div class="row"><span class="label">phase</span><span>' + phase + ' (' + conf + '%)</span></div>' +
          '<div class="row"><span class="label">rsi</span><span>' + rsi + '</span></div>' +
          '<div class="row"><span class="label">sentiment</span><span>' + report.sentiment.label + '</span></div>' +
          '<div class="row"><span class="label">risk</span><span>' + risk + '/100</span></div>' +
          '<span class="action ' + action + '">' + action + '</span>' +
          '<ul class="warnings">' + warnings + '</ul>' +
          '<div class="stamp">' + new Date(report.generated_at).toLocaleString() + '</div>' +
          '<button data-asset="' + key + '">analyze now</button>';

        card.querySelector('button').addEventListener('click', async (e) => {
          e.target.disabled = true;
          try {
            await fetch('/analyze?asset=' + e.target.dataset.asset, { method: 'POST' });
          } finally {
            e.target.disabled = false;
          }
        });

        cards.appendChild(card);
      }
    }

    const source = new EventSource('/reports/stream');
    source.addEventListener('report', (e) => {
      const report = JSON.parse(e.data);
      reports.set(assetKey(report), report);
      status.textContent = 'live';
      render();
    });
    source.addEventListener('no_data', () => {
      status.textContent = 'no reports yet';
    });
    source.onerror = () => {
      status.textContent = 'reconnecting…';
    };
  </script>
</body>
</html>
`
