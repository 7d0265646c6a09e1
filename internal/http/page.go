package http

const pageTpl = `<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>dirigible</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:1100px;margin:0 auto;padding:1rem}
header{display:flex;justify-content:space-between;align-items:center;margin-bottom:1rem}
ul{list-style:none;padding:0;margin:0}
.panel{border:1px solid #ddd;border-radius:8px;padding:12px}
.list .item{display:flex;gap:10px;align-items:center;padding:8px;border-radius:6px}
.list .item:hover{background:#f6f6f6}
.list .item.active{background:#eef5ff}
.thumb{width:96px;height:72px;object-fit:cover;border-radius:4px;flex:0 0 auto;background:#eee}
.title{font-weight:600;flex:1}
.muted, small{color:#666}
#status{margin-top:8px}
</style>
<header>
  <form method="get" action="/">
    <input type="search" name="q" value="{{.Query}}" placeholder="Search videos" />
    <button type="submit">Search</button>
  </form>
  <a href="/">Library</a>
</header>

{{with .Result.Authorization}}
  <p class="panel">Drive access needs your consent. <a href="{{.URL}}">Authorize</a></p>
{{else}}{{if not .Signed}}
  <p class="panel">Not signed in. <a href="/oauth/login">Sign in with Google</a></p>
{{end}}{{end}}

<section>
  <h3>Videos</h3>
  {{if .Result.Videos}}
  <div class="panel list" id="list">
    <ul role="listbox" aria-label="Videos">
    {{range .Result.Videos}}
      <li class="item" role="option" aria-selected="false" tabindex="0" data-id="{{.ID}}">
        {{if .IconID}}<img class="thumb" src="/media/{{.IconID}}" alt="thumb">{{else}}<span class="thumb"></span>{{end}}
        <div class="title">{{.Name}} <small>{{bytes .Size}}</small></div>
        <button type="button" class="cast">Cast</button>
      </li>
    {{end}}
    </ul>
  </div>
  {{else}}
    <small>No videos found</small>
  {{end}}
  {{with .Result.NextPageToken}}<p><a href="/?q={{$.Query}}&amp;page={{.}}">Next page →</a></p>{{end}}
  <div id="status" class="muted" aria-live="polite"></div>
</section>

<script>
(function(){
  var list = document.getElementById('list');
  var status = document.getElementById('status');
  if (!list) return;
  function select(li){
    Array.prototype.forEach.call(list.querySelectorAll('.item'), function(n){
      n.classList.remove('active'); n.setAttribute('aria-selected', 'false');
    });
    li.classList.add('active');
    li.setAttribute('aria-selected', 'true');
  }
  function castItem(li){
    select(li);
    var id = li.getAttribute('data-id');
    status.textContent = 'Casting…';
    fetch('/api/videos/' + encodeURIComponent(id) + '/cast', {method: 'POST'})
      .then(function(r){ return r.json().catch(function(){ return {}; }).then(function(b){ return {ok: r.ok, body: b}; }); })
      .then(function(res){
        if (res.ok) { status.textContent = 'Playing ' + res.body.metadata.title; return; }
        if (res.body.authorization) { window.location.href = res.body.authorization.url; return; }
        status.textContent = res.body.error || 'Cast failed';
      })
      .catch(function(){ status.textContent = 'Cast failed'; });
  }
  list.addEventListener('click', function(e){
    var li = e.target.closest('.item');
    if (!li) return;
    if (e.target.classList.contains('cast')) { castItem(li); } else { select(li); li.focus(); }
  });
  list.addEventListener('keydown', function(e){
    var li = e.target.closest('.item');
    if (!li) return;
    if (e.key === 'Enter') { e.preventDefault(); castItem(li); }
    else if (e.key === 'ArrowDown' || e.key === 'ArrowUp') {
      e.preventDefault();
      var next = e.key === 'ArrowDown' ? li.nextElementSibling : li.previousElementSibling;
      if (next) { select(next); next.focus(); next.scrollIntoView({ block: 'nearest' }); }
    }
  });
})();
</script>
`
